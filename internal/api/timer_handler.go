package api

import (
	"net/http"

	"github.com/phrazzld/studydesk/internal/api/shared"
)

// TimerState handles GET /api/timer.
func (h *Handler) TimerState(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Timer.View())
}

// StartTimer handles POST /api/timer/start.
func (h *Handler) StartTimer(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Timer.Start(r.Context()))
}

// PauseTimer handles POST /api/timer/pause.
func (h *Handler) PauseTimer(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Timer.Pause(r.Context()))
}

// ToggleTimer handles POST /api/timer/toggle, the single Start/Pause button.
func (h *Handler) ToggleTimer(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Timer.Toggle(r.Context()))
}

// ResetTimer handles POST /api/timer/reset.
func (h *Handler) ResetTimer(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Timer.Reset(r.Context()))
}

// SetSessionLength handles PUT /api/timer/session.
func (h *Handler) SetSessionLength(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	view, err := h.desk.Timer.SetSessionLength(r.Context(), *req.Minutes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// StaminaState handles GET /api/stamina.
func (h *Handler) StaminaState(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Stamina.View())
}

// RestoreStamina handles POST /api/stamina/restore. The restore runs in the
// background, so a started restore answers 202.
func (h *Handler) RestoreStamina(w http.ResponseWriter, r *http.Request) {
	view, err := h.desk.Stamina.Restore(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusAccepted, view)
}
