package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"session_records", "stopwatch_blocks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_session_records_user_started", "idx_stopwatch_blocks_user_started"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ModeConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO session_records
		(id, user_id, mode, planned_seconds, started_at, ended_at, created_at)
		VALUES ('s1', 'u', 'nap', 60, '2025-03-15T00:00:00Z', '2025-03-15T00:01:00Z', '2025-03-15T00:01:00Z')`)
	assert.Error(t, err, "unknown modes are rejected")
}

func TestMigrate_StopwatchSecondsMustBePositive(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO stopwatch_blocks (id, user_id, started_at, seconds, created_at)
		VALUES ('b1', 'u', '2025-03-15T00:00:00Z', 0, '2025-03-15T00:00:00Z')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/cadence.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
