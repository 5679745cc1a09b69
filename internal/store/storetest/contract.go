// Package storetest holds the behavioural contract every KeyValueStore
// backend must satisfy, shared by the backend test suites.
package storetest

import (
	"context"
	"strings"
	"testing"

	"github.com/phrazzld/studydesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store. The contract closes it.
type Factory func(t *testing.T) store.KeyValueStore

// RunContract runs the shared KeyValueStore behaviour checks against newStore.
func RunContract(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("missing key reports not found", func(t *testing.T) {
		kv := open(t, newStore)

		_, err := kv.Get(context.Background(), store.KeyTheme)

		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set then get round-trips verbatim", func(t *testing.T) {
		kv := open(t, newStore)
		ctx := context.Background()
		values := map[string]string{
			store.KeyNotes:   "line one\nline two\t<b>bold</b> ünïcödé",
			store.KeyStamina: "91.4",
			store.KeyGraves:  `[{"id":"x","exam":"GATE"}]`,
			"empty":          "",
		}

		for k, v := range values {
			require.NoError(t, kv.Set(ctx, k, v))
		}
		for k, want := range values {
			got, err := kv.Get(ctx, k)
			require.NoError(t, err)
			assert.Equal(t, want, got, "key %q", k)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		kv := open(t, newStore)
		ctx := context.Background()

		require.NoError(t, kv.Set(ctx, store.KeyTheme, "horror"))
		require.NoError(t, kv.Set(ctx, store.KeyTheme, "neon"))

		got, err := kv.Get(ctx, store.KeyTheme)
		require.NoError(t, err)
		assert.Equal(t, "neon", got)
	})

	t.Run("large values survive", func(t *testing.T) {
		kv := open(t, newStore)
		ctx := context.Background()
		big := strings.Repeat("graveyard ", 50_000)

		require.NoError(t, kv.Set(ctx, store.KeyNotes, big))

		got, err := kv.Get(ctx, store.KeyNotes)
		require.NoError(t, err)
		assert.Equal(t, big, got)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		kv := open(t, newStore)

		assert.ErrorIs(t, kv.Set(context.Background(), "", "x"), store.ErrInvalidKey)
		_, err := kv.Get(context.Background(), "")
		assert.ErrorIs(t, err, store.ErrInvalidKey)
	})

	t.Run("set many writes every key", func(t *testing.T) {
		kv := open(t, newStore)
		ctx := context.Background()

		require.NoError(t, store.SetMany(ctx, kv, map[string]string{
			store.KeyCurrentDeck: "gs",
			store.KeyDeckIndex:   "3",
		}))

		deck, err := kv.Get(ctx, store.KeyCurrentDeck)
		require.NoError(t, err)
		idx, err := kv.Get(ctx, store.KeyDeckIndex)
		require.NoError(t, err)
		assert.Equal(t, "gs", deck)
		assert.Equal(t, "3", idx)
	})
}

func open(t *testing.T, newStore Factory) store.KeyValueStore {
	t.Helper()
	kv := newStore(t)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}
