package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		display_name  TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject        TEXT NOT NULL DEFAULT '',
		start_time     TEXT NOT NULL,
		end_time       TEXT,
		duration_sec   REAL NOT NULL DEFAULT 0,
		focus_score    INTEGER NOT NULL DEFAULT 0
		               CHECK(focus_score BETWEEN 0 AND 100),
		productivity   INTEGER NOT NULL DEFAULT 0
		               CHECK(productivity BETWEEN 0 AND 100),
		time_of_day    TEXT NOT NULL
		               CHECK(time_of_day IN ('morning','afternoon','evening','night')),
		version        INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_sessions_user_start ON study_sessions(user_id, start_time DESC)`,

	`CREATE TABLE IF NOT EXISTS study_segments (
		id             TEXT PRIMARY KEY,
		session_id     TEXT NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
		kind           TEXT NOT NULL CHECK(kind IN ('study','break')),
		segment_number INTEGER NOT NULL CHECK(segment_number > 0),
		start_time     TEXT NOT NULL,
		end_time       TEXT,
		duration_sec   REAL NOT NULL DEFAULT 0,
		UNIQUE (session_id, kind, segment_number)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_segments_session ON study_segments(session_id)`,

	`CREATE TABLE IF NOT EXISTS test_records (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		taken_at         TEXT NOT NULL,
		answers          TEXT NOT NULL,
		personality_type TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		recommendation   TEXT NOT NULL DEFAULT '',
		extraversion      REAL NOT NULL,
		openness          REAL NOT NULL,
		conscientiousness REAL NOT NULL,
		agreeableness     REAL NOT NULL,
		neuroticism       REAL NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_test_records_user_taken ON test_records(user_id, taken_at DESC)`,
}
