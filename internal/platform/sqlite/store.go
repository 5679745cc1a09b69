package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/studydesk/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// schema creates the entry table. It is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key   TEXT PRIMARY KEY,
    entry_value TEXT NOT NULL,
    updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);`

// Open creates or opens a SQLite database at the given path and ensures the schema exists.
func Open(ctx context.Context, path string, logger *slog.Logger) (*store.SQLKeyValueStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return initialize(ctx, db, logger)
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory(ctx context.Context, logger *slog.Logger) (*store.SQLKeyValueStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)

	return initialize(ctx, db, logger)
}

func initialize(ctx context.Context, db *sql.DB, logger *slog.Logger) (*store.SQLKeyValueStore, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store.NewSQLKeyValueStore(db, store.SQLOptions{
		Placeholder: store.QuestionPlaceholder,
		MapError:    MapError,
		Component:   "sqlite_store",
	}, logger), nil
}

// MapError translates SQLite result codes into store errors.
// It returns nil for errors it does not recognise.
func MapError(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return nil
	}

	switch se.Code() & 0xff {
	case sqlite3.SQLITE_FULL:
		return fmt.Errorf("%w: %v", store.ErrQuotaExceeded, err)
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_READONLY,
		sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
		return fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
	default:
		return nil
	}
}
