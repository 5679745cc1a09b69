package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver for database/sql
	"github.com/phrazzld/studydesk/internal/store"
)

// OpenDB opens and pings a Postgres connection pool.
func OpenDB(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// A single local user never needs a wide pool.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Open connects to url, applies pending migrations, and returns the store.
func Open(ctx context.Context, url string, logger *slog.Logger) (*store.SQLKeyValueStore, error) {
	db, err := OpenDB(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, db, CommandUp, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db, logger), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, logger *slog.Logger) *store.SQLKeyValueStore {
	return store.NewSQLKeyValueStore(db, store.SQLOptions{
		Placeholder: store.DollarPlaceholder,
		MapError:    MapError,
		Component:   "postgres_store",
	}, logger)
}
