package api

import (
	"net/http"

	"github.com/phrazzld/studydesk/internal/api/shared"
)

// GetCard handles GET /api/flashcards.
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Flashcards.View())
}

// SelectDeck handles PUT /api/flashcards/deck.
func (h *Handler) SelectDeck(w http.ResponseWriter, r *http.Request) {
	var req DeckRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	view, err := h.desk.Flashcards.SelectDeck(r.Context(), req.Deck)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// NextCard handles POST /api/flashcards/next.
func (h *Handler) NextCard(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Flashcards.Next(r.Context()))
}

// PreviousCard handles POST /api/flashcards/previous.
func (h *Handler) PreviousCard(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Flashcards.Previous(r.Context()))
}

// FlipCard handles POST /api/flashcards/flip.
func (h *Handler) FlipCard(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Flashcards.Flip(r.Context()))
}

// HandleKey handles POST /api/flashcards/key with the keyboard contract:
// Space flips, ArrowRight and ArrowLeft navigate, other keys are ignored.
func (h *Handler) HandleKey(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	view, handled := h.desk.Flashcards.HandleKey(r.Context(), req.Code)
	shared.RespondWithJSON(w, r, http.StatusOK, KeyResponse{Handled: handled, Card: view})
}

// CardPartial handles GET /partials/card.
func (h *Handler) CardPartial(w http.ResponseWriter, r *http.Request) {
	view := h.desk.Flashcards.View()
	shared.RespondWithHTML(w, r, func(w http.ResponseWriter) error {
		return h.tmpl.Card(w, view)
	})
}
