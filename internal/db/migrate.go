package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_snapshots (
		key        TEXT PRIMARY KEY
		           CHECK(key IN ('professional_context','calendar_constraints','generated_calendar')),
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS generation_runs (
		id          TEXT PRIMARY KEY,
		step        TEXT NOT NULL CHECK(step IN ('context','calendar')),
		started_at  TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		success     INTEGER NOT NULL DEFAULT 0,
		error       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_generation_runs_started ON generation_runs(started_at)`,
}
