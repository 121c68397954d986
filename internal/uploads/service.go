package uploads

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/cartforge/quote-service/pkg/config"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
	"github.com/cartforge/quote-service/pkg/logger"
)

// FileInput is one base64-encoded file submitted by the client. Content may
// carry a data-URI prefix ("data:image/png;base64,....") which is stripped
// before decoding.
type FileInput struct {
	Name    string
	Content string
}

// StoredFile describes one persisted upload. FileHash is the on-disk basename
// assigned by the service, FileName echoes the name the client submitted. The
// file lands at FileHash plus the lowercased extension.
type StoredFile struct {
	FileHash  string `json:"filehash"`
	FileName  string `json:"filename"`
	Extension string `json:"extension"`
}

// Service persists base64-encoded uploads into the media directory.
type Service interface {
	Save(ctx context.Context, inputs []FileInput) ([]StoredFile, error)
}

type service struct {
	mediaDir     string
	maxFileBytes int64
	logg         *logger.Logger
}

// NewService constructs an upload service writing into cfg.MediaDir.
func NewService(cfg config.UploadConfig, logg *logger.Logger) (Service, error) {
	if cfg.MediaDir == "" {
		return nil, fmt.Errorf("media directory required")
	}
	if cfg.MaxFileBytes <= 0 {
		return nil, fmt.Errorf("max file bytes must be positive")
	}
	return &service{
		mediaDir:     cfg.MediaDir,
		maxFileBytes: cfg.MaxFileBytes,
		logg:         logg,
	}, nil
}

// Save decodes and writes every submitted file under a random hash name. The
// batch is all-or-nothing: a failure removes files already written.
func (s *service) Save(ctx context.Context, inputs []FileInput) ([]StoredFile, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no files submitted")
	}

	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "prepare media directory")
	}

	stored := make([]StoredFile, 0, len(inputs))
	written := make([]string, 0, len(inputs))

	for _, input := range inputs {
		file, path, err := s.saveOne(input)
		if err != nil {
			s.cleanup(ctx, written)
			return nil, err
		}
		stored = append(stored, *file)
		written = append(written, path)
	}
	return stored, nil
}

func (s *service) saveOne(input FileInput) (*StoredFile, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}

	payload, err := decodeContent(input.Content)
	if err != nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "file content is not valid base64").
			WithDetails(map[string]string{"file": name})
	}
	if len(payload) == 0 {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "file content is empty").
			WithDetails(map[string]string{"file": name})
	}
	if int64(len(payload)) > s.maxFileBytes {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the size limit").
			WithDetails(map[string]string{"file": name})
	}

	hash, err := randomHash()
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate file hash")
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	target := hash
	if extension != "" {
		target = hash + "." + extension
	}
	path := filepath.Join(s.mediaDir, target)

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed saving file")
	}

	return &StoredFile{
		FileHash:  hash,
		FileName:  name,
		Extension: extension,
	}, path, nil
}

// cleanup removes partially written files; removal failures are aggregated and
// logged, never surfaced to the client.
func (s *service) cleanup(ctx context.Context, paths []string) {
	var errs error
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil && s.logg != nil {
		s.logg.Error(ctx, "failed removing partial uploads", errs)
	}
}

// decodeContent accepts raw base64 or a data URI.
func decodeContent(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, ";base64,"); idx >= 0 && strings.HasPrefix(content, "data:") {
		content = content[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(content)
}

func randomHash() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
