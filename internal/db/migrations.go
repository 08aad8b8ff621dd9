package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time   DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS people (
			email           TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			profile_picture TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS event_members (
			event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			email    TEXT NOT NULL REFERENCES people(email),
			position INTEGER NOT NULL,
			PRIMARY KEY (event_id, email)
		);

		CREATE TABLE IF NOT EXISTS calendar_blocks (
			id         TEXT PRIMARY KEY,
			event_id   TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			color      TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time   DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			event_id    TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_time  DATETIME NOT NULL,
			end_time    DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS task_assignees (
			task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			email   TEXT NOT NULL REFERENCES people(email),
			PRIMARY KEY (task_id, email)
		);

		CREATE INDEX IF NOT EXISTS idx_blocks_event ON calendar_blocks(event_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_event ON tasks(event_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
