package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
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
	if err := migrateBackfillAnalyticsRows(db); err != nil {
		return fmt.Errorf("backfilling analytics rows: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		token      TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id           TEXT PRIMARY KEY,
		owner_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		subject      TEXT NOT NULL DEFAULT '',
		started_at   TEXT NOT NULL,
		ended_at     TEXT,
		duration_min INTEGER NOT NULL DEFAULT 0 CHECK(duration_min >= 0),
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_owner ON study_sessions(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_ended ON study_sessions(ended_at)`,

	// At most one open session per owner.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_owner_open
		ON study_sessions(owner_id) WHERE ended_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS todos (
		id           TEXT PRIMARY KEY,
		owner_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','completed')),
		created_at   TEXT NOT NULL,
		completed_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id, created_at)`,

	// One aggregate row per owner.
	`CREATE TABLE IF NOT EXISTS analytics (
		owner_id              TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		total_sessions        INTEGER NOT NULL DEFAULT 0 CHECK(total_sessions >= 0),
		total_study_min       INTEGER NOT NULL DEFAULT 0 CHECK(total_study_min >= 0),
		total_completed_tasks INTEGER NOT NULL DEFAULT 0 CHECK(total_completed_tasks >= 0),
		subjects_breakdown    TEXT NOT NULL DEFAULT '{}'
	)`,
}

// migrateBackfillAnalyticsRows provisions a zeroed aggregate row for any user
// created before aggregate rows moved to user-creation time. Idempotent.
func migrateBackfillAnalyticsRows(db *sql.DB) error {
	query := `INSERT INTO analytics (owner_id)
		SELECT u.id FROM users u
		WHERE NOT EXISTS (SELECT 1 FROM analytics a WHERE a.owner_id = u.id)`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("inserting missing aggregate rows: %w", err)
	}
	return nil
}
