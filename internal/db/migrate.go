package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full list re-runs safely on every open.
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
	`CREATE TABLE IF NOT EXISTS categories (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL COLLATE NOCASE UNIQUE,
		color      TEXT NOT NULL DEFAULT '',
		icon       TEXT NOT NULL DEFAULT '',
		is_default INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                 TEXT PRIMARY KEY,
		category_id        TEXT REFERENCES categories(id) ON DELETE SET NULL,
		title              TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		priority           TEXT NOT NULL DEFAULT 'medium'
		                   CHECK(priority IN ('low','medium','high')),
		scheduled_date     TEXT NOT NULL,
		deadline_enabled   INTEGER NOT NULL DEFAULT 0,
		deadline_hour      INTEGER NOT NULL DEFAULT 0,
		deadline_minute    INTEGER NOT NULL DEFAULT 0,
		timer_enabled      INTEGER NOT NULL DEFAULT 0,
		timer_duration_sec INTEGER NOT NULL DEFAULT 0,
		recurrence_pattern TEXT NOT NULL DEFAULT 'none'
		                   CHECK(recurrence_pattern IN ('none','daily','monthly','yearly','custom')),
		recurrence_days    TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_scheduled_date ON tasks(scheduled_date)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category_id)`,

	// Durable per-occurrence facts. Status is derived, never stored here;
	// the unique key makes completion idempotent under concurrency.
	`CREATE TABLE IF NOT EXISTS occurrence_records (
		task_id          TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		date             TEXT NOT NULL,
		completed_at     TEXT,
		timer_started_at TEXT,
		timer_accum_sec  INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		PRIMARY KEY (task_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_occurrence_records_date ON occurrence_records(date)`,

	// Single-row settings table.
	`CREATE TABLE IF NOT EXISTS settings (
		id                       INTEGER PRIMARY KEY CHECK(id = 1),
		min_daily_tasks          INTEGER NOT NULL DEFAULT 3,
		streak_threshold_percent INTEGER NOT NULL DEFAULT 80,
		updated_at               TEXT NOT NULL
	)`,
}
