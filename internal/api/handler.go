package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/studydesk/internal/api/shared"
	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/platform/logger"
	"github.com/phrazzld/studydesk/internal/service"
	"github.com/phrazzld/studydesk/internal/web"
)

// DefaultSessionOptions are the session lengths offered on the page.
var DefaultSessionOptions = []int{15, 25, 45, 60}

// DefaultStreamChunk is the amount of audio rendered per ambient stream write.
const DefaultStreamChunk = 100 * time.Millisecond

// HandlerOptions tune a Handler.
type HandlerOptions struct {
	SessionOptions []int
	AssetVersion   string
	StreamChunk    time.Duration
}

// Handler serves the page, the partials and the JSON API of one desk.
type Handler struct {
	desk   *service.Desk
	tmpl   *web.Templates
	opts   HandlerOptions
	logger *slog.Logger
}

// NewHandler creates a Handler for desk.
func NewHandler(desk *service.Desk, tmpl *web.Templates, opts HandlerOptions, logger *slog.Logger) *Handler {
	if desk == nil || tmpl == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("desk and templates are required for Handler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.SessionOptions) == 0 {
		opts.SessionOptions = DefaultSessionOptions
	}
	if opts.StreamChunk <= 0 {
		opts.StreamChunk = DefaultStreamChunk
	}
	return &Handler{
		desk:   desk,
		tmpl:   tmpl,
		opts:   opts,
		logger: logger.With(slog.String("component", "api_handler")),
	}
}

// Mount registers every route on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/health", h.Health)
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))

	r.Route("/partials", func(r chi.Router) {
		r.Get("/card", h.CardPartial)
		r.Get("/graves", h.GravesPartial)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Put("/theme", h.SelectTheme)
		r.Post("/visibility", h.SetVisibility)

		r.Route("/ambient", func(r chi.Router) {
			r.Post("/toggle", h.ToggleAmbient)
			r.Get("/stream", h.StreamAmbient)
		})

		r.Route("/timer", func(r chi.Router) {
			r.Get("/", h.TimerState)
			r.Post("/start", h.StartTimer)
			r.Post("/pause", h.PauseTimer)
			r.Post("/toggle", h.ToggleTimer)
			r.Post("/reset", h.ResetTimer)
			r.Put("/session", h.SetSessionLength)
		})

		r.Route("/stamina", func(r chi.Router) {
			r.Get("/", h.StaminaState)
			r.Post("/restore", h.RestoreStamina)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.GetNotes)
			r.Put("/", h.SaveNotes)
			r.Post("/preview", h.PreviewNotes)
		})

		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", h.GetCard)
			r.Put("/deck", h.SelectDeck)
			r.Post("/next", h.NextCard)
			r.Post("/previous", h.PreviousCard)
			r.Post("/flip", h.FlipCard)
			r.Post("/key", h.HandleKey)
		})

		r.Route("/graves", func(r chi.Router) {
			r.Get("/", h.ListGraves)
			r.Post("/", h.AddGrave)
			r.Delete("/{id}", h.DeleteGrave)
		})
	})
}

// Page handles GET / by rendering the whole desk.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	data := web.PageData{
		Desk:           h.desk.Snapshot(),
		Exams:          domain.Exams(),
		SessionOptions: h.opts.SessionOptions,
		Location:       h.desk.Location(),
		AssetVer:       h.opts.AssetVersion,
	}
	shared.RespondWithHTML(w, r, func(w http.ResponseWriter) error {
		return h.tmpl.Page(w, data)
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// State handles GET /api/state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Snapshot())
}

// SelectTheme handles PUT /api/theme.
func (h *Handler) SelectTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	view, err := h.desk.Theme.Select(r.Context(), req.Theme)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SetVisibility handles POST /api/visibility, reported by the page on
// every visibilitychange.
func (h *Handler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req VisibilityRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("visibility changed",
		slog.Bool("hidden", *req.Hidden))
	shared.RespondWithJSON(w, r, http.StatusOK, h.desk.Stamina.SetHidden(r.Context(), *req.Hidden))
}
