package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/studydesk/internal/api/shared"
	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/service"
	"github.com/phrazzld/studydesk/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusOK

	// Not found errors
	case errors.Is(err, service.ErrGraveNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrRestoreInProgress):
		return http.StatusConflict

	// Capability errors
	case errors.Is(err, service.ErrAudioUnavailable),
		errors.Is(err, store.ErrStorageUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.Is(err, service.ErrInvalidTheme):
		return "Unknown theme"

	case errors.Is(err, service.ErrInvalidSessionLength):
		return "Session length must be a positive number of minutes"

	case errors.Is(err, service.ErrUnknownDeck):
		return "Unknown deck"

	case errors.Is(err, service.ErrInvalidGraveEntry):
		return "Exam, topic and type are required"

	case errors.Is(err, service.ErrGraveNotFound):
		return "Grave entry not found"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"

	case errors.Is(err, service.ErrRestoreInProgress):
		return "Stamina restore already in progress"

	case errors.Is(err, service.ErrAudioUnavailable):
		return "Ambient audio is unavailable"

	case errors.Is(err, store.ErrStorageUnavailable):
		return "Storage is unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "" {
		return fmt.Sprintf("Invalid %s", field)
	}
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gt", "gte":
		return "too small"
	case "max", "lt", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message replaces the derived one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}

// handleDecodeError answers a request whose body could not be decoded or
// validated.
func handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs), errors.Is(err, shared.ErrEmptyBody):
		HandleAPIError(w, r, err, "")
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
	}
}
