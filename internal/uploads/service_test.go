package uploads

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/cartforge/quote-service/pkg/config"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func newTestUploadService(t *testing.T, maxBytes int64) (Service, string) {
	t.Helper()

	dir := t.TempDir()
	svc, err := NewService(config.UploadConfig{MediaDir: dir, MaxFileBytes: maxBytes}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, dir
}

func TestSaveWritesDecodedFiles(t *testing.T) {
	t.Parallel()

	svc, dir := newTestUploadService(t, 1024)

	payload := []byte("hello upload")
	stored, err := svc.Save(context.Background(), []FileInput{{
		Name:    "avatar.png",
		Content: base64.StdEncoding.EncodeToString(payload),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected one stored file, got %d", len(stored))
	}

	file := stored[0]
	if !hashPattern.MatchString(file.FileHash) {
		t.Fatalf("unexpected hash format: %q", file.FileHash)
	}
	if file.Extension != "png" {
		t.Fatalf("unexpected extension: %q", file.Extension)
	}
	if file.FileName != "avatar.png" {
		t.Fatalf("expected the submitted name back, got %q", file.FileName)
	}

	onDisk, err := os.ReadFile(filepath.Join(dir, file.FileHash+".png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(onDisk) != string(payload) {
		t.Fatalf("unexpected file content: %q", onDisk)
	}
}

func TestSaveEchoesOriginalNameAndLowercasesExtension(t *testing.T) {
	t.Parallel()

	svc, dir := newTestUploadService(t, 1024)

	stored, err := svc.Save(context.Background(), []FileInput{{
		Name:    "PHOTO.PNG",
		Content: base64.StdEncoding.EncodeToString([]byte("shot")),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file := stored[0]
	if file.FileName != "PHOTO.PNG" {
		t.Fatalf("expected the submitted name back, got %q", file.FileName)
	}
	if file.Extension != "png" {
		t.Fatalf("expected lowercased extension, got %q", file.Extension)
	}
	if _, err := os.Stat(filepath.Join(dir, file.FileHash+".png")); err != nil {
		t.Fatalf("expected file under hash name: %v", err)
	}
}

func TestSaveAcceptsDataURI(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUploadService(t, 1024)

	stored, err := svc.Save(context.Background(), []FileInput{{
		Name:    "pixel.gif",
		Content: "data:image/gif;base64," + base64.StdEncoding.EncodeToString([]byte{0x47, 0x49, 0x46}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored[0].Extension != "gif" {
		t.Fatalf("unexpected extension: %q", stored[0].Extension)
	}
}

func TestSaveRejectsInvalidBase64(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUploadService(t, 1024)

	_, err := svc.Save(context.Background(), []FileInput{{Name: "bad.txt", Content: "%%% not base64 %%%"}})
	if err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUploadService(t, 4)

	_, err := svc.Save(context.Background(), []FileInput{{
		Name:    "big.bin",
		Content: base64.StdEncoding.EncodeToString([]byte("five!")),
	}})
	if err == nil {
		t.Fatal("expected error for oversized file")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestSaveRejectsEmptyBatch(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUploadService(t, 1024)

	_, err := svc.Save(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for empty batch")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestSaveRemovesPartialBatchOnFailure(t *testing.T) {
	t.Parallel()

	svc, dir := newTestUploadService(t, 1024)

	_, err := svc.Save(context.Background(), []FileInput{
		{Name: "ok.txt", Content: base64.StdEncoding.EncodeToString([]byte("fine"))},
		{Name: "bad.txt", Content: "not base64 at all %%%"},
	})
	if err == nil {
		t.Fatal("expected batch to fail")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("unexpected error: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected partial files removed, found %d entries", len(entries))
	}
}

func TestNewServiceValidatesConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewService(config.UploadConfig{MediaDir: "", MaxFileBytes: 1}, nil); err == nil {
		t.Fatal("expected error for empty media dir")
	}
	if _, err := NewService(config.UploadConfig{MediaDir: "x", MaxFileBytes: 0}, nil); err == nil {
		t.Fatal("expected error for non-positive size limit")
	}
}
