package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studydesk/internal/api/shared"
	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/service"
	"github.com/phrazzld/studydesk/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "theme", err: service.ErrInvalidTheme, want: http.StatusBadRequest},
		{name: "wrapped session", err: fmt.Errorf("set: %w", service.ErrInvalidSessionLength), want: http.StatusBadRequest},
		{name: "deck", err: service.ErrUnknownDeck, want: http.StatusBadRequest},
		{name: "grave input", err: service.ErrInvalidGraveEntry, want: http.StatusBadRequest},
		{name: "invalid id", err: domain.ErrInvalidID, want: http.StatusBadRequest},
		{name: "empty body", err: shared.ErrEmptyBody, want: http.StatusBadRequest},
		{name: "grave missing", err: service.ErrGraveNotFound, want: http.StatusNotFound},
		{name: "restore", err: service.ErrRestoreInProgress, want: http.StatusConflict},
		{name: "audio", err: service.ErrAudioUnavailable, want: http.StatusServiceUnavailable},
		{name: "storage", err: store.ErrQuotaExceeded, want: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessageHidesDetails(t *testing.T) {
	err := fmt.Errorf("query postgres://desk:hunter2@db/desk: %w", errors.New("connection refused"))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(err))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Grave entry not found", GetSafeErrorMessage(service.ErrGraveNotFound))
}

func TestSanitizeValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(struct {
		Deck string `validate:"required"`
	}{})
	require.Error(t, err)

	assert.Equal(t, "Invalid deck: required field", SanitizeValidationError(err))
	assert.Equal(t, "Invalid deck: required field", GetSafeErrorMessage(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))

	_, addErr := domain.NewGraveEntry(domain.GraveInput{Exam: "UPSC", Topic: "t", Type: "y"}, uuid.New(), testEpoch)
	require.ErrorIs(t, addErr, domain.ErrInvalidGraveEntry)
	assert.Equal(t, "Invalid exam: invalid value", GetSafeErrorMessage(addErr))
}
