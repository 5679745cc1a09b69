package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"
)

// ErrInvalidConfig is returned when an engine or filter cannot be built from
// the given parameters.
var ErrInvalidConfig = errors.New("invalid audio configuration")

// Config describes the noise chain.
type Config struct {
	SampleRate int
	CutoffHz   float64
	Q          float64
	Level      float64
	Ramp       time.Duration
	Loop       time.Duration
	// Seed fixes the noise buffer; zero picks a random seed.
	Seed uint64
}

// Engine owns the shared noise buffer and the on/off state. Every listener
// attaches its own Graph so filter state and clocks stay independent, while
// toggling ramps all of them together.
type Engine struct {
	cfg    Config
	source []float64

	mu        sync.Mutex
	active    bool
	listeners map[*Graph]struct{}
}

// NewEngine builds the noise buffer and checks that a filter can be made.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Q == 0 {
		cfg.Q = ButterworthQ
	}
	if cfg.Level < 0 || cfg.Level > 1 {
		return nil, fmt.Errorf("%w: level %.3f outside [0, 1]", ErrInvalidConfig, cfg.Level)
	}
	if cfg.Ramp < 0 {
		return nil, fmt.Errorf("%w: negative ramp", ErrInvalidConfig)
	}
	if _, err := NewLowPass(cfg.SampleRate, cfg.CutoffHz, cfg.Q); err != nil {
		return nil, err
	}
	n := int(cfg.Loop.Seconds() * float64(cfg.SampleRate))
	if n <= 0 {
		return nil, fmt.Errorf("%w: loop of %s holds no samples", ErrInvalidConfig, cfg.Loop)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	return &Engine{
		cfg:       cfg,
		source:    NoiseBuffer(n, rng),
		listeners: make(map[*Graph]struct{}),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Source returns a copy of the looping noise buffer.
func (e *Engine) Source() []float64 {
	out := make([]float64, len(e.source))
	copy(out, e.source)
	return out
}

// Active reports whether the engine is switched on.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// SetActive switches the engine and ramps every attached graph towards the
// new level.
func (e *Engine) SetActive(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = active
	target := e.targetLocked()
	for g := range e.listeners {
		g.RampGain(target, e.cfg.Ramp)
	}
}

// Target is the gain level the engine is settling on.
func (e *Engine) Target() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targetLocked()
}

func (e *Engine) targetLocked() float64 {
	if e.active {
		return e.cfg.Level
	}
	return 0
}

// Attach creates a graph for a new listener. A listener joining while the
// engine is on fades in over the ramp duration.
func (e *Engine) Attach() *Graph {
	filter, _ := NewLowPass(e.cfg.SampleRate, e.cfg.CutoffHz, e.cfg.Q)
	g := newGraph(e.cfg.SampleRate, e.source, filter, 0)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[g] = struct{}{}
	if target := e.targetLocked(); target > 0 {
		g.RampGain(target, e.cfg.Ramp)
	}
	return g
}

// Detach stops ramping g.
func (e *Engine) Detach(g *Graph) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, g)
}

// Listeners reports how many graphs are attached.
func (e *Engine) Listeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Stream writes an endless WAV stream to w, rendering one chunk of audio per
// chunk of wall time, until ctx is done or a write fails. flush, when not
// nil, runs after every chunk.
func (e *Engine) Stream(ctx context.Context, w io.Writer, chunk time.Duration, flush func()) error {
	if chunk <= 0 {
		chunk = 100 * time.Millisecond
	}
	g := e.Attach()
	defer e.Detach(g)

	if err := WriteStreamHeader(w, e.cfg.SampleRate); err != nil {
		return err
	}

	samples := make([]float64, g.frames(chunk))
	if len(samples) == 0 {
		samples = make([]float64, 1)
	}
	buf := make([]byte, 0, 2*len(samples))

	ticker := time.NewTicker(chunk)
	defer ticker.Stop()

	for {
		g.Render(samples)
		buf = AppendPCM16(buf[:0], samples)
		if _, err := w.Write(buf); err != nil {
			return err
		}
		if flush != nil {
			flush()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
