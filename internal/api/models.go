package api

import (
	"html/template"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/service"
)

// ThemeRequest is the body of PUT /api/theme.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

// SessionRequest is the body of PUT /api/timer/session. Non-positive
// values reach the timer, which rejects them.
type SessionRequest struct {
	Minutes *int `json:"minutes" validate:"required"`
}

// VisibilityRequest is the body of POST /api/visibility.
type VisibilityRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

// NotesRequest carries note text. Empty text is valid.
type NotesRequest struct {
	Text *string `json:"text" validate:"required"`
}

// DeckRequest is the body of PUT /api/flashcards/deck.
type DeckRequest struct {
	Deck string `json:"deck" validate:"required"`
}

// KeyRequest is the body of POST /api/flashcards/key. Code follows the
// browser KeyboardEvent.code names.
type KeyRequest struct {
	Code string `json:"code" validate:"required"`
}

// KeyResponse reports whether a key press changed the flashcard viewer.
type KeyResponse struct {
	Handled bool             `json:"handled"`
	Card    service.CardView `json:"card"`
}

// PreviewResponse carries rendered Markdown.
type PreviewResponse struct {
	HTML template.HTML `json:"html"`
}

// GraveListResponse is the body of GET /api/graves.
type GraveListResponse struct {
	Filter  string              `json:"filter"`
	Entries []domain.GraveEntry `json:"entries"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
