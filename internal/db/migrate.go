package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_records (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		mode            TEXT NOT NULL
		                CHECK(mode IN ('work','short_break','long_break')),
		planned_seconds INTEGER NOT NULL CHECK(planned_seconds >= 0),
		actual_seconds  INTEGER NOT NULL DEFAULT 0 CHECK(actual_seconds >= 0),
		started_at      TEXT NOT NULL,
		ended_at        TEXT NOT NULL,
		completed_at    TEXT,
		completed       INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_records_user_started ON session_records(user_id, started_at)`,

	`CREATE TABLE IF NOT EXISTS stopwatch_blocks (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		started_at TEXT NOT NULL,
		seconds    INTEGER NOT NULL CHECK(seconds > 0),
		note       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stopwatch_blocks_user_started ON stopwatch_blocks(user_id, started_at)`,

	// Task references on session records
	`ALTER TABLE session_records ADD COLUMN task_ref TEXT`,
}
