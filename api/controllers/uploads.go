package controllers

import (
	"net/http"

	"github.com/cartforge/quote-service/api/responses"
	"github.com/cartforge/quote-service/api/validators"
	uploadsvc "github.com/cartforge/quote-service/internal/uploads"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
	"github.com/cartforge/quote-service/pkg/logger"
)

// Upload accepts a batch of base64-encoded files and persists them into the
// media directory.
func Upload(svc uploadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "upload service unavailable"))
			return
		}

		var payload []uploadFilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inputs := make([]uploadsvc.FileInput, len(payload))
		for i, file := range payload {
			inputs[i] = uploadsvc.FileInput{
				Name:    file.Name,
				Content: file.EncodedFile,
			}
		}

		stored, err := svc.Save(r.Context(), inputs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stored)
	}
}

type uploadFilePayload struct {
	Name        string `json:"name"`
	EncodedFile string `json:"encoded_file"`
}
