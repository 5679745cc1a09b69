// Package testdb provides a migrated Postgres database for integration
// tests. Tests are skipped when no database URL is configured, except in CI
// where a missing database is a failure.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/studydesk/internal/platform/logger"
	"github.com/phrazzld/studydesk/internal/platform/postgres"
	"github.com/phrazzld/studydesk/internal/redact"
	"github.com/phrazzld/studydesk/internal/store"
)

// Environment variables consulted for the test database URL, in order.
const (
	EnvTestDBURL   = "STUDYDESK_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvCI          = "CI"
	EnvGitHub      = "GITHUB_ACTIONS"
)

// GetTestDatabaseURL returns the first configured test database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvTestDBURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsCI reports whether the tests run under a CI service.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" || os.Getenv(EnvGitHub) != ""
}

// GetTestDBWithT opens the test database, applies migrations and empties
// the key/value table. The connection is closed when t ends.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		if IsCI() {
			t.Fatalf("%s must be set in CI", EnvTestDBURL)
		}
		t.Skipf("%s not set, skipping Postgres integration test", EnvTestDBURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.OpenDB(ctx, url)
	if err != nil {
		t.Fatalf("connect to test database: %s", redact.Error(err))
	}
	t.Cleanup(func() { _ = db.Close() })

	log, _ := logger.GetTestLogger(t)
	if err := postgres.Migrate(ctx, db, postgres.CommandUp, log); err != nil {
		t.Fatalf("migrate test database: %s", redact.Error(err))
	}

	CleanupDB(t, db)
	return db
}

// CleanupDB removes every key/value entry.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	query := fmt.Sprintf("DELETE FROM %s", store.TableName)
	if _, err := db.ExecContext(context.Background(), query); err != nil {
		t.Fatalf("clean test database: %s", redact.Error(err))
	}
}

// WithTx runs fn in a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin transaction: %s", redact.Error(err))
	}
	defer func() { _ = tx.Rollback() }()
	fn(t, tx)
}
