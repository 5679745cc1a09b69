// Package memory provides an in-memory implementation of the key/value
// store used for tests and ephemeral sessions.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/phrazzld/studydesk/internal/store"
)

// Compile-time contract assertions.
var (
	_ store.KeyValueStore = (*Store)(nil)
	_ store.BatchWriter   = (*Store)(nil)
)

// Store is a map guarded by a mutex. Its contents vanish on Close.
type Store struct {
	mu       sync.RWMutex
	data     map[string]string
	writeErr error
	writes   int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// NewStoreWith returns a store pre-populated with a copy of seed.
func NewStoreWith(seed map[string]string) *Store {
	s := NewStore()
	maps.Copy(s.data, seed)
	return s
}

// Get implements store.KeyValueStore.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	if err := store.ValidateKey(key); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", store.ErrKeyNotFound
	}
	return v, nil
}

// Set implements store.KeyValueStore.
func (s *Store) Set(_ context.Context, key, value string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return store.NewStoreError(key, "set", "write refused", s.writeErr)
	}
	s.data[key] = value
	s.writes++
	return nil
}

// SetMany implements store.BatchWriter. Either every key is written or none.
func (s *Store) SetMany(_ context.Context, values map[string]string) error {
	for key := range values {
		if err := store.ValidateKey(key); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return store.NewStoreError("", "set_many", "write refused", s.writeErr)
	}
	maps.Copy(s.data, values)
	s.writes += len(values)
	return nil
}

// FailWrites makes every following write return err; nil restores normal
// behaviour. It simulates a full or unavailable host store.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// Writes reports how many keys have been written successfully.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Snapshot returns a copy of the stored data.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data)
}

// Close implements store.KeyValueStore and drops all data.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.data)
	return nil
}
