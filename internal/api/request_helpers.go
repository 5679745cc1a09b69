package api

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/studydesk/internal/api/shared"
	"github.com/phrazzld/studydesk/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrInvalidID, paramName)
	}
	return id, nil
}

// isFormRequest reports whether the body is an HTML form submission.
func isFormRequest(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data"
}

// decodeGraveInput reads a grave entry from a JSON or form body. Field
// validation is left to the graveyard.
func decodeGraveInput(r *http.Request) (domain.GraveInput, error) {
	var in domain.GraveInput
	if !isFormRequest(r) {
		err := shared.DecodeJSON(r, &in)
		return in, err
	}

	r.Body = http.MaxBytesReader(nil, r.Body, shared.MaxBodyBytes)
	if err := r.ParseMultipartForm(shared.MaxBodyBytes); err != nil && err != http.ErrNotMultipart {
		return in, fmt.Errorf("invalid form body: %w", err)
	}
	in.Exam = r.PostFormValue("exam")
	in.Topic = r.PostFormValue("topic")
	in.Type = r.PostFormValue("type")
	in.Cause = r.PostFormValue("cause")
	in.Fix = r.PostFormValue("fix")
	return in, nil
}
