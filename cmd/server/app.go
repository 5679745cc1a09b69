package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/studydesk/internal/api/ws"
	"github.com/phrazzld/studydesk/internal/audio"
	"github.com/phrazzld/studydesk/internal/config"
	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/redact"
	"github.com/phrazzld/studydesk/internal/schedule"
	"github.com/phrazzld/studydesk/internal/service"
	"github.com/phrazzld/studydesk/internal/store"
	"github.com/phrazzld/studydesk/internal/web"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	store     store.KeyValueStore
	loop      *schedule.TickerLoop
	emitter   *events.InMemoryEventEmitter
	hub       *ws.Hub
	desk      *service.Desk
	templates *web.Templates
}

// newApplication creates a new application instance with all dependencies initialized.
// The store is owned by the application from here on and closed by cleanup.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, kv store.KeyValueStore) (*application, error) {
	tmpl, err := web.Load()
	if err != nil {
		return nil, err
	}

	opts, err := deskOptions(cfg)
	if err != nil {
		return nil, err
	}

	app := &application{
		config:    cfg,
		logger:    logger,
		store:     kv,
		loop:      schedule.NewTickerLoop(),
		emitter:   events.NewInMemoryEventEmitter(logger),
		templates: tmpl,
	}

	app.hub = ws.NewHub(ws.Options{AllowedOrigins: cfg.Server.AllowedOrigins}, logger)
	app.emitter.RegisterHandler(app.hub)

	app.desk, err = service.NewDesk(service.Deps{
		Store:  kv,
		Loop:   app.loop,
		Events: app.emitter,
		Logger: logger,
	}, opts)
	if err != nil {
		app.loop.Close()
		return nil, fmt.Errorf("failed to create desk: %w", err)
	}
	app.desk.Load(ctx)

	logger.Info("Application initialized successfully")
	return app, nil
}

// deskOptions translates configuration into desk options.
func deskOptions(cfg *config.Config) (service.Options, error) {
	loc, err := loadLocation(cfg.Server.Timezone)
	if err != nil {
		return service.Options{}, err
	}
	w, a := cfg.Widget, cfg.Ambient
	return service.Options{
		DefaultTheme:   domain.Theme(w.DefaultTheme),
		SessionMinutes: w.SessionMinutes,
		Stamina: service.StaminaConfig{
			TickDrain:       w.TickDrain,
			HiddenDrain:     w.HiddenDrain,
			RestoreSteps:    w.RestoreSteps,
			RestoreAmount:   w.RestoreAmount,
			RestoreInterval: time.Duration(w.RestoreIntervalMS) * time.Millisecond,
		},
		Ambient: audio.Config{
			SampleRate: a.SampleRate,
			CutoffHz:   a.CutoffHz,
			Q:          audio.ButterworthQ,
			Level:      a.Level,
			Ramp:       time.Duration(a.RampMS) * time.Millisecond,
			Loop:       time.Duration(a.LoopSeconds) * time.Second,
		},
		AmbientEnabled: a.Enabled,
		Decks:          domain.StudyDecks(),
		Location:       loc,
	}, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.desk.Close()
	app.loop.Close()
	app.hub.Close()

	if err := app.store.Close(); err != nil {
		app.logger.Error("Error closing store", redact.Attr(err))
	}

	app.logger.Info("Application shutdown completed")
}
