// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain value fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when persisted data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrNotFound is returned when a referenced value does not exist.
	ErrNotFound = errors.New("not found")
)

// Widget-specific errors. Each wraps one of the common errors above so callers
// can branch on either.
var (
	ErrInvalidTheme         = fmt.Errorf("%w: unknown theme", ErrValidation)
	ErrInvalidSessionLength = fmt.Errorf("%w: session length must be a positive number of minutes", ErrValidation)
	ErrUnknownDeck          = fmt.Errorf("%w: unknown deck", ErrValidation)
	ErrInvalidGraveEntry    = fmt.Errorf("%w: invalid grave entry", ErrValidation)
	ErrGraveNotFound        = fmt.Errorf("grave entry %w", ErrNotFound)
)
