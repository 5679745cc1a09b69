package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDesk(t *testing.T, f *fixture) *Desk {
	t.Helper()
	desk, err := NewDesk(f.deps, Options{
		DefaultTheme:   domain.DefaultTheme,
		SessionMinutes: 25,
		Stamina:        DefaultStaminaConfig(),
		Ambient:        ambientConfig(),
		AmbientEnabled: true,
		Location:       time.UTC,
	})
	require.NoError(t, err)
	t.Cleanup(desk.Close)
	return desk
}

func TestDeskScenarioHiddenThenFocus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	desk := newDesk(t, f)
	desk.Load(ctx)

	require.Equal(t, 100.0, desk.Stamina.View().Value)

	assert.Equal(t, 92.0, desk.Stamina.SetHidden(ctx, true).Value)

	desk.Timer.Start(ctx)
	f.loop.Advance(10 * time.Second)

	assert.InDelta(t, 91.4, desk.Stamina.View().Value, 1e-9)
	assert.Equal(t, 91, desk.Stamina.View().Percent)
	assert.Equal(t, 1490, desk.Timer.View().Remaining)

	persisted, ok := domain.ParseStamina(f.stored(store.KeyStamina))
	require.True(t, ok)
	assert.InDelta(t, 91.4, persisted, 1e-9)
}

func TestDeskPausedTimerDoesNotDrain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	desk := newDesk(t, f)

	desk.Timer.Start(ctx)
	f.loop.Advance(5 * time.Second)
	desk.Timer.Pause(ctx)
	before := desk.Stamina.View().Value
	f.loop.Advance(time.Minute)

	assert.Equal(t, before, desk.Stamina.View().Value)
}

func TestDeskRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	desk := newDesk(t, f)
	desk.Load(ctx)

	_, err := desk.Theme.Select(ctx, "desi")
	require.NoError(t, err)
	desk.Notes.Save(ctx, "remember: 2PL ≠ strict 2PL")
	desk.Stamina.Drain(ctx, 12.34)
	_, err = desk.Flashcards.SelectDeck(ctx, "cn")
	require.NoError(t, err)
	desk.Flashcards.Next(ctx)
	_, err = desk.Graves.Add(ctx, domain.GraveInput{Exam: "GATE", Topic: "Sliding window", Type: "Formula"})
	require.NoError(t, err)

	before := desk.Snapshot()

	// A second desk over the same store sees the same state.
	again := newFixture(t, f.store.Snapshot())
	reloaded := newDesk(t, again)
	reloaded.Load(ctx)
	after := reloaded.Snapshot()

	assert.Equal(t, before.Theme, after.Theme)
	assert.Equal(t, before.Notes, after.Notes)
	assert.Equal(t, before.Stamina, after.Stamina)
	assert.Equal(t, before.Flashcards, after.Flashcards)
	assert.Equal(t, before.Graves, after.Graves)
	assert.Equal(t, "Ambient: Off", after.Ambient.Label, "ambient always starts off")
	assert.Equal(t, 1500, after.Timer.Remaining, "timer state is not persisted")
}

func TestDeskSnapshotJSON(t *testing.T) {
	f := newFixture(t, nil)
	desk := newDesk(t, f)
	desk.Load(context.Background())

	raw, err := json.Marshal(desk.Snapshot())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"theme", "ambient", "timer", "stamina", "notes", "flashcards", "graves"} {
		assert.Contains(t, decoded, key)
	}
	assert.JSONEq(t, "[]", string(decoded["graves"]))
}

func TestDeskEventsReachHandlers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	desk := newDesk(t, f)

	desk.Timer.Start(ctx)
	f.loop.Advance(2 * time.Second)

	types := f.events.Types()
	assert.Equal(t, []string{
		events.TimerChanged,
		events.TimerTick, events.StaminaChanged,
		events.TimerTick, events.StaminaChanged,
	}, types)
}
