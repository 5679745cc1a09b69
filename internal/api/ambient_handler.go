package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/studydesk/internal/api/shared"
	"github.com/phrazzld/studydesk/internal/platform/logger"
	"github.com/phrazzld/studydesk/internal/redact"
)

// ToggleAmbient handles POST /api/ambient/toggle. On a host without audio
// the toggle is inert and the unchanged view is returned.
func (h *Handler) ToggleAmbient(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Ambient.Toggle(r.Context()))
}

// StreamAmbient handles GET /api/ambient/stream. The response is an endless
// 16-bit mono WAV stream that follows the ambient gain, so a silent stream
// is sent while ambient is off.
func (h *Handler) StreamAmbient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	if _, err := h.desk.Ambient.Engine(ctx); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	rc := http.NewResponseController(w)
	// The stream outlives the server's write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Debug("could not clear write deadline", redact.Attr(err))
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	flush := func() {
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			log.Debug("flush failed", redact.Attr(err))
		}
	}

	if err := h.desk.Ambient.Stream(ctx, w, h.opts.StreamChunk, flush); err != nil && ctx.Err() == nil {
		log.Info("ambient stream ended", redact.Attr(err), slog.String("remote_addr", r.RemoteAddr))
	}
}
