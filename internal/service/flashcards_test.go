package service

import (
	"context"
	"testing"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlashcards(t *testing.T, seed map[string]string) (*FlashcardService, *fixture) {
	t.Helper()
	f := newFixture(t, seed)
	return NewFlashcardService(f.deps, domain.StudyDecks()), f
}

func TestFlashcardsFreshState(t *testing.T) {
	svc, _ := newFlashcards(t, nil)
	view := svc.Load(context.Background())

	assert.Equal(t, "dbms", view.Deck)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, "1 / 4", view.Counter)
	assert.Equal(t, "ACID — What does each letter ensure?", view.Question)
	assert.False(t, view.Flipped)
	assert.Len(t, view.Decks, 3)
}

func TestFlashcardsScenarioNextWraps(t *testing.T) {
	ctx := context.Background()
	svc, f := newFlashcards(t, nil)
	svc.Load(ctx)

	view, err := svc.SelectDeck(ctx, "cn")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, "cn", f.stored(store.KeyCurrentDeck))
	assert.Equal(t, "0", f.stored(store.KeyDeckIndex))

	var indexes []int
	for range 4 {
		indexes = append(indexes, svc.Next(ctx).Index)
	}
	assert.Equal(t, []int{1, 2, 3, 0}, indexes)
	assert.Equal(t, "0", f.stored(store.KeyDeckIndex))
}

func TestFlashcardsCyclic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFlashcards(t, nil)

	for _, key := range domain.StudyDecks().Keys() {
		_, err := svc.SelectDeck(ctx, key)
		require.NoError(t, err)
		n := svc.View().Count

		for start := 0; start < n; start++ {
			for svc.View().Index != start {
				svc.Next(ctx)
			}
			for range n {
				svc.Next(ctx)
			}
			assert.Equal(t, start, svc.View().Index, "deck %s", key)

			svc.Next(ctx)
			assert.Equal(t, start, svc.Previous(ctx).Index)
		}
	}
}

func TestFlashcardsFlip(t *testing.T) {
	ctx := context.Background()
	svc, f := newFlashcards(t, nil)

	view := svc.Flip(ctx)
	assert.True(t, view.Flipped)
	assert.Equal(t, 0, view.Index, "flip leaves the cursor alone")
	assert.Zero(t, f.store.Writes(), "flip is not persisted")

	view = svc.Next(ctx)
	assert.False(t, view.Flipped, "navigation un-flips")

	svc.Flip(ctx)
	view, err := svc.SelectDeck(ctx, "gs")
	require.NoError(t, err)
	assert.False(t, view.Flipped)
	assert.Equal(t, 4, f.events.Count(events.FlashcardsChanged))
}

func TestFlashcardsHandleKey(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFlashcards(t, nil)

	view, handled := svc.HandleKey(ctx, KeySpace)
	assert.True(t, handled)
	assert.True(t, view.Flipped)

	view, handled = svc.HandleKey(ctx, KeyArrowRight)
	assert.True(t, handled)
	assert.Equal(t, 1, view.Index)

	view, handled = svc.HandleKey(ctx, KeyArrowLeft)
	assert.True(t, handled)
	assert.Equal(t, 0, view.Index)

	view, handled = svc.HandleKey(ctx, "KeyQ")
	assert.False(t, handled)
	assert.Equal(t, 0, view.Index)
}

func TestFlashcardsSelectUnknownDeck(t *testing.T) {
	ctx := context.Background()
	svc, f := newFlashcards(t, nil)
	svc.Next(ctx)
	writes := f.store.Writes()

	_, err := svc.SelectDeck(ctx, "physics")
	assert.ErrorIs(t, err, ErrUnknownDeck)
	assert.Equal(t, 1, svc.View().Index)
	assert.Equal(t, writes, f.store.Writes())
}

func TestFlashcardsCursorRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, f := newFlashcards(t, nil)

	_, err := svc.SelectDeck(ctx, "gs")
	require.NoError(t, err)
	svc.Previous(ctx)
	want := svc.Cursor()

	reloaded := NewFlashcardService(f.deps, domain.StudyDecks())
	reloaded.Load(ctx)
	assert.Equal(t, want, reloaded.Cursor())
	assert.Equal(t, domain.DeckCursor{Deck: "gs", Index: 3}, want)
}

func TestFlashcardsLoadInvalidCursor(t *testing.T) {
	svc, _ := newFlashcards(t, map[string]string{
		store.KeyCurrentDeck: "physics",
		store.KeyDeckIndex:   "12",
	})
	view := svc.Load(context.Background())
	assert.Equal(t, "dbms", view.Deck)
	assert.Equal(t, 0, view.Index)
}
