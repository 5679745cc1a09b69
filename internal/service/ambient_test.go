package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/studydesk/internal/audio"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ambientConfig() audio.Config {
	return audio.Config{
		SampleRate: 8000,
		CutoffHz:   400,
		Level:      0.08,
		Ramp:       200 * time.Millisecond,
		Loop:       2 * time.Second,
		Seed:       7,
	}
}

func TestAmbientToggle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	builds := 0
	svc := NewAmbientService(f.deps, ambientConfig(), true).
		WithEngineFactory(func(cfg audio.Config) (*audio.Engine, error) {
			builds++
			return audio.NewEngine(cfg)
		})

	initial := svc.View()
	assert.Equal(t, AmbientView{Available: true, Label: "Ambient: Off", AriaPressed: "false"}, initial)
	assert.Zero(t, builds, "engine is built lazily")

	on := svc.Toggle(ctx)
	assert.Equal(t, AmbientView{Active: true, Available: true, Label: "Ambient: On", AriaPressed: "true"}, on)

	engine, err := svc.Engine(ctx)
	require.NoError(t, err)
	assert.True(t, engine.Active())
	assert.Equal(t, 0.08, engine.Target())

	off := svc.Toggle(ctx)
	assert.False(t, off.Active)
	assert.Equal(t, "Ambient: Off", off.Label)
	assert.Equal(t, 0.0, engine.Target())

	assert.Equal(t, 1, builds)
	assert.Equal(t, 2, f.events.Count(events.AmbientChanged))
	assert.Zero(t, f.store.Writes(), "ambient state is never persisted")
}

func TestAmbientWithoutAudioIsInert(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled host", func(t *testing.T) {
		f := newFixture(t, nil)
		svc := NewAmbientService(f.deps, ambientConfig(), false)

		for range 3 {
			view := svc.Toggle(ctx)
			assert.False(t, view.Active)
			assert.False(t, view.Available)
			assert.Equal(t, "Ambient: Off", view.Label)
		}
		assert.Zero(t, f.events.Count(events.AmbientChanged))

		entries, err := f.logs.GetLogEntries()
		require.NoError(t, err)
		warnings := 0
		for _, e := range entries {
			if e["level"] == "WARN" {
				warnings++
			}
		}
		assert.Equal(t, 1, warnings, "warned once")

		_, err = svc.Engine(ctx)
		assert.ErrorIs(t, err, ErrAudioUnavailable)
		err = svc.Stream(ctx, &bytes.Buffer{}, time.Millisecond, nil)
		assert.ErrorIs(t, err, ErrAudioUnavailable)
	})

	t.Run("engine build failure", func(t *testing.T) {
		f := newFixture(t, nil)
		svc := NewAmbientService(f.deps, ambientConfig(), true).
			WithEngineFactory(func(audio.Config) (*audio.Engine, error) {
				return nil, errors.New("no output device")
			})

		assert.NotPanics(t, func() { svc.Toggle(ctx) })
		view := svc.Toggle(ctx)
		assert.False(t, view.Active)
		assert.False(t, view.Available)
	})
}

func TestAmbientStream(t *testing.T) {
	f := newFixture(t, nil)
	svc := NewAmbientService(f.deps, ambientConfig(), true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	require.NoError(t, svc.Stream(ctx, &buf, 10*time.Millisecond, nil))
	assert.Equal(t, "RIFF", buf.String()[:4])
	assert.Greater(t, buf.Len(), 44)
}
