package store

import "context"

// Keys written by the widget components. Each key is read and written
// independently; the graves key holds a JSON document.
const (
	KeyTheme       = "theme"
	KeyStamina     = "stamina"
	KeyNotes       = "studyNotes"
	KeyCurrentDeck = "currentDeck"
	KeyDeckIndex   = "deckIndex"
	KeyGraves      = "graves"
)

// KeyValueStore defines the interface for string-keyed, string-valued persistence.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key has never been written.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	// Returns an error wrapping ErrStorageUnavailable when the write is refused.
	Set(ctx context.Context, key, value string) error

	// Close releases the resources held by the store.
	Close() error
}

// BatchWriter is implemented by stores able to write several keys atomically.
type BatchWriter interface {
	SetMany(ctx context.Context, values map[string]string) error
}

// SetMany writes every entry of values, atomically when kv implements
// BatchWriter and one key at a time otherwise.
func SetMany(ctx context.Context, kv KeyValueStore, values map[string]string) error {
	if bw, ok := kv.(BatchWriter); ok {
		return bw.SetMany(ctx, values)
	}
	for k, v := range values {
		if err := kv.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKey rejects empty keys.
func ValidateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}
