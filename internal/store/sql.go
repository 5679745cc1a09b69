package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/phrazzld/studydesk/internal/platform/logger"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sql.DB and *sql.Tx, allowing our code
// to work with either a database connection or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TableName is the table every SQL backend keeps its entries in.
const TableName = "kv_entries"

// Placeholder renders the n-th (1-based) bind parameter of a dialect.
type Placeholder func(n int) string

// QuestionPlaceholder is the SQLite bind style.
func QuestionPlaceholder(int) string { return "?" }

// DollarPlaceholder is the Postgres bind style.
func DollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

// SQLOptions describes the dialect differences between SQL backends.
type SQLOptions struct {
	Placeholder Placeholder
	// MapError translates driver errors into store errors. It may be nil.
	MapError func(error) error
	// Component names the backend in log lines.
	Component string
}

// SQLKeyValueStore implements KeyValueStore on top of database/sql.
// Backends only differ in the driver, the bind style and the error mapping.
type SQLKeyValueStore struct {
	db       *sql.DB
	opts     SQLOptions
	logger   *slog.Logger
	getQuery string
	setQuery string
}

var (
	_ KeyValueStore = (*SQLKeyValueStore)(nil)
	_ BatchWriter   = (*SQLKeyValueStore)(nil)
)

// NewSQLKeyValueStore wraps an open database whose schema already contains TableName.
func NewSQLKeyValueStore(db *sql.DB, opts SQLOptions, log *slog.Logger) *SQLKeyValueStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if opts.Placeholder == nil {
		opts.Placeholder = QuestionPlaceholder
	}
	if opts.Component == "" {
		opts.Component = "sql_store"
	}
	if log == nil {
		log = slog.Default()
	}

	p := opts.Placeholder
	return &SQLKeyValueStore{
		db:     db,
		opts:   opts,
		logger: log.With(slog.String("component", opts.Component)),
		getQuery: fmt.Sprintf(
			"SELECT entry_value FROM %s WHERE entry_key = %s",
			TableName, p(1),
		),
		setQuery: fmt.Sprintf(
			"INSERT INTO %s (entry_key, entry_value, updated_at) VALUES (%s, %s, %s) "+
				"ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at",
			TableName, p(1), p(2), p(3),
		),
	}
}

// DB exposes the underlying handle, mostly for migrations and tests.
func (s *SQLKeyValueStore) DB() *sql.DB {
	return s.db
}

// Get implements KeyValueStore.Get.
func (s *SQLKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", NewStoreError(key, "get", "query failed", s.mapError(err))
	}
	return value, nil
}

// Set implements KeyValueStore.Set.
func (s *SQLKeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return s.set(ctx, s.db, key, value)
}

// SetMany implements BatchWriter.SetMany inside a single transaction.
func (s *SQLKeyValueStore) SetMany(ctx context.Context, values map[string]string) error {
	for key := range values {
		if err := ValidateKey(key); err != nil {
			return err
		}
	}

	err := RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for key, value := range values {
			if err := s.set(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}
	return nil
}

func (s *SQLKeyValueStore) set(ctx context.Context, q DBTX, key, value string) error {
	if _, err := q.ExecContext(ctx, s.setQuery, key, value, time.Now().UTC()); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("write rejected",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return NewStoreError(key, "set", "write failed", s.mapError(err))
	}
	return nil
}

// Close implements KeyValueStore.Close.
func (s *SQLKeyValueStore) Close() error {
	return s.db.Close()
}

func (s *SQLKeyValueStore) mapError(err error) error {
	if s.opts.MapError != nil {
		if mapped := s.opts.MapError(err); mapped != nil {
			return mapped
		}
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
