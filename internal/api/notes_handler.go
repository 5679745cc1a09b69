package api

import (
	"net/http"

	"github.com/phrazzld/studydesk/internal/api/shared"
)

// GetNotes handles GET /api/notes.
func (h *Handler) GetNotes(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Notes.View())
}

// notesBodyLimit disables the body cap for notes, which are kept verbatim
// whatever their size.
const notesBodyLimit = 0

// SaveNotes handles PUT /api/notes, sent on every edit.
func (h *Handler) SaveNotes(w http.ResponseWriter, r *http.Request) {
	var req NotesRequest
	if err := shared.DecodeAndValidateLimit(r, &req, notesBodyLimit); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Notes.Save(r.Context(), *req.Text))
}

// PreviewNotes handles POST /api/notes/preview. The text is rendered as
// Markdown without being saved.
func (h *Handler) PreviewNotes(w http.ResponseWriter, r *http.Request) {
	var req NotesRequest
	if err := shared.DecodeAndValidateLimit(r, &req, notesBodyLimit); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	html, err := h.desk.Notes.Preview(*req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to render preview")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PreviewResponse{HTML: html})
}
