package service

import (
	"errors"

	"github.com/phrazzld/studydesk/internal/domain"
)

// Service errors. Callers use errors.Is; the API layer maps them to status
// codes.
var (
	// ErrRestoreInProgress is returned when a stamina restore is requested
	// while a previous one is still running. The request is ignored.
	// API layer should map this to HTTP 409 Conflict.
	ErrRestoreInProgress = errors.New("stamina restore already in progress")

	// ErrAudioUnavailable is returned when the ambient engine cannot run on
	// this host. API layer should map this to HTTP 503 Service Unavailable.
	ErrAudioUnavailable = errors.New("audio unavailable")
)

// Domain errors surfaced unchanged by the services.
var (
	ErrInvalidTheme         = domain.ErrInvalidTheme
	ErrInvalidSessionLength = domain.ErrInvalidSessionLength
	ErrUnknownDeck          = domain.ErrUnknownDeck
	ErrInvalidGraveEntry    = domain.ErrInvalidGraveEntry
	ErrGraveNotFound        = domain.ErrGraveNotFound
)
