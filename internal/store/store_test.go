package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/studydesk/internal/platform/memory"
	"github.com/phrazzld/studydesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainStore hides the BatchWriter implementation of the memory store so
// the fallback path of SetMany is exercised.
type plainStore struct {
	store.KeyValueStore
}

func TestSetManyFallsBackToSingleWrites(t *testing.T) {
	mem := memory.NewStore()
	kv := plainStore{mem}

	err := store.SetMany(context.Background(), kv, map[string]string{
		store.KeyCurrentDeck: "cn",
		store.KeyDeckIndex:   "0",
	})
	require.NoError(t, err)

	deck, err := mem.Get(context.Background(), store.KeyCurrentDeck)
	require.NoError(t, err)
	assert.Equal(t, "cn", deck)
}

func TestSetManyStopsOnFirstFailure(t *testing.T) {
	mem := memory.NewStore()
	mem.FailWrites(store.ErrQuotaExceeded)

	err := store.SetMany(context.Background(), plainStore{mem}, map[string]string{"a": "1"})

	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestStoreErrorUnwraps(t *testing.T) {
	err := store.NewStoreError("graves", "set", "write failed", store.ErrQuotaExceeded)

	assert.True(t, errors.Is(err, store.ErrQuotaExceeded))
	assert.True(t, errors.Is(err, store.ErrStorageUnavailable))
	assert.Contains(t, err.Error(), `set operation on "graves" failed`)
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, store.IsNotFoundError(store.ErrKeyNotFound))
	assert.False(t, store.IsNotFoundError(store.ErrStorageUnavailable))
	assert.ErrorIs(t, store.ValidateKey(""), store.ErrInvalidKey)
	assert.NoError(t, store.ValidateKey(store.KeyTheme))
}
