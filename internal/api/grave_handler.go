package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studydesk/internal/api/shared"
	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/platform/logger"
	"github.com/phrazzld/studydesk/internal/web"
)

func examFilter(r *http.Request) string {
	if f := r.URL.Query().Get("exam"); f != "" {
		return f
	}
	return domain.ExamFilterAll
}

// ListGraves handles GET /api/graves?exam=.
func (h *Handler) ListGraves(w http.ResponseWriter, r *http.Request) {
	filter := examFilter(r)
	shared.RespondWithJSON(w, r, http.StatusOK, GraveListResponse{
		Filter:  filter,
		Entries: h.desk.Graves.List(filter),
	})
}

// AddGrave handles POST /api/graves with a JSON or form body.
func (h *Handler) AddGrave(w http.ResponseWriter, r *http.Request) {
	in, err := decodeGraveInput(r)
	if err != nil {
		handleDecodeError(w, r, err)
		return
	}

	entry, err := h.desk.Graves.Add(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("grave added",
		slog.String("id", entry.ID.String()),
		slog.String("exam", string(entry.Exam)))
	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// DeleteGrave handles DELETE /api/graves/{id}.
func (h *Handler) DeleteGrave(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.desk.Graves.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GravesPartial handles GET /partials/graves?exam=.
func (h *Handler) GravesPartial(w http.ResponseWriter, r *http.Request) {
	data := web.GravesData{
		Entries:  h.desk.Graves.List(examFilter(r)),
		Location: h.desk.Location(),
	}
	shared.RespondWithHTML(w, r, func(w http.ResponseWriter) error {
		return h.tmpl.Graves(w, data)
	})
}
