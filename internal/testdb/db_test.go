package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/phrazzld/studydesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTestDatabaseURL(t *testing.T) {
	t.Setenv(EnvTestDBURL, "")
	t.Setenv(EnvDatabaseURL, "")
	assert.Empty(t, GetTestDatabaseURL())

	t.Setenv(EnvDatabaseURL, "postgres://fallback")
	assert.Equal(t, "postgres://fallback", GetTestDatabaseURL())

	t.Setenv(EnvTestDBURL, "postgres://preferred")
	assert.Equal(t, "postgres://preferred", GetTestDatabaseURL())
}

func TestIsCI(t *testing.T) {
	t.Setenv(EnvCI, "")
	t.Setenv(EnvGitHub, "")
	assert.False(t, IsCI())

	t.Setenv(EnvGitHub, "true")
	assert.True(t, IsCI())

	t.Setenv(EnvGitHub, "")
	t.Setenv(EnvCI, "1")
	assert.True(t, IsCI())
}

func TestWithTxRollsBack(t *testing.T) {
	db := GetTestDBWithT(t)
	ctx := context.Background()

	WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (entry_key, entry_value) VALUES ($1, $2)", store.TableName),
			store.KeyNotes, "draft")
		require.NoError(t, err)
	})

	var n int
	err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", store.TableName)).Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)
}
