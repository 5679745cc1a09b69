package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/studydesk/internal/audio"
	"github.com/phrazzld/studydesk/internal/events"
)

// AmbientView is the ambient toggle state shown to the page.
type AmbientView struct {
	Active      bool   `json:"active"`
	Available   bool   `json:"available"`
	Label       string `json:"label"`
	AriaPressed string `json:"aria_pressed"`
}

// EngineFactory builds the audio engine on first use.
type EngineFactory func(cfg audio.Config) (*audio.Engine, error)

// AmbientService toggles the noise generator. The engine is built lazily on
// the first activation; when the host has no audio the toggle does nothing.
// State is never persisted.
type AmbientService struct {
	component
	cfg     audio.Config
	enabled bool
	build   EngineFactory

	engine      *audio.Engine
	unavailable bool
	warned      bool
	active      bool
}

// NewAmbientService returns an inactive engine. enabled=false models a host
// without audio output.
func NewAmbientService(d Deps, cfg audio.Config, enabled bool) *AmbientService {
	return &AmbientService{
		component: newComponent("ambient", d),
		cfg:       cfg,
		enabled:   enabled,
		build:     audio.NewEngine,
	}
}

// WithEngineFactory replaces the engine constructor.
func (s *AmbientService) WithEngineFactory(f EngineFactory) *AmbientService {
	s.build = f
	return s
}

// Toggle flips the ambient state and ramps the gain. Without audio it
// returns the unchanged, inactive state.
func (s *AmbientService) Toggle(ctx context.Context) AmbientView {
	return do(s.loop, func() AmbientView {
		if !s.ensureEngine(ctx) {
			return s.view()
		}
		s.active = !s.active
		s.engine.SetActive(s.active)

		view := s.view()
		s.emit(ctx, events.AmbientChanged, view)
		s.log(ctx).Debug("ambient toggled", slog.Bool("active", s.active))
		return view
	})
}

// View returns the current state.
func (s *AmbientService) View() AmbientView {
	return do(s.loop, s.view)
}

// Engine returns the engine, building it if needed.
func (s *AmbientService) Engine(ctx context.Context) (*audio.Engine, error) {
	return do2(s.loop, func() (*audio.Engine, error) {
		if !s.ensureEngine(ctx) {
			return nil, ErrAudioUnavailable
		}
		return s.engine, nil
	})
}

// Stream writes the rendered noise to w as an endless WAV stream until ctx
// is cancelled. It runs outside the loop.
func (s *AmbientService) Stream(ctx context.Context, w io.Writer, chunk time.Duration, flush func()) error {
	engine, err := s.Engine(ctx)
	if err != nil {
		return err
	}
	s.log(ctx).Info("ambient stream started")
	defer s.log(ctx).Info("ambient stream stopped")
	return engine.Stream(ctx, w, chunk, flush)
}

// ensureEngine builds the engine once. A host without audio, or a failed
// build, disables audio for the lifetime of the service with a single
// warning.
func (s *AmbientService) ensureEngine(ctx context.Context) bool {
	if s.engine != nil {
		return true
	}
	if !s.enabled {
		s.unavailable = true
	}
	if s.unavailable {
		if !s.warned {
			s.warned = true
			s.log(ctx).Warn("audio output disabled, ambient toggle is inert")
		}
		return false
	}
	engine, err := s.build(s.cfg)
	if err != nil {
		s.unavailable = true
		s.warned = true
		s.log(ctx).Warn("audio unavailable, ambient toggle disabled",
			slog.String("error", err.Error()))
		return false
	}
	s.engine = engine
	return true
}

func (s *AmbientService) view() AmbientView {
	label, pressed := "Ambient: Off", "false"
	if s.active {
		label, pressed = "Ambient: On", "true"
	}
	return AmbientView{
		Active:      s.active,
		Available:   s.enabled && !s.unavailable,
		Label:       label,
		AriaPressed: pressed,
	}
}
