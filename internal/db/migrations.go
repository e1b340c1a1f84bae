package db

import "fmt"

// migrate runs database migrations.
// Instants are stored as INTEGER unix nanoseconds in UTC so that SQL
// comparisons order them as absolute times.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS owners (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS time_blocks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id    INTEGER NOT NULL REFERENCES owners(id) ON DELETE CASCADE,
			title       TEXT NOT NULL CHECK(length(title) BETWEEN 1 AND 200),
			description TEXT CHECK(description IS NULL OR length(description) <= 1000),
			start_time  INTEGER NOT NULL,
			end_time    INTEGER NOT NULL,
			created_at  INTEGER NOT NULL,
			updated_at  INTEGER NOT NULL,
			CHECK(start_time < end_time)
		);

		CREATE INDEX IF NOT EXISTS idx_time_blocks_owner ON time_blocks(owner_id);
		CREATE INDEX IF NOT EXISTS idx_time_blocks_owner_start ON time_blocks(owner_id, start_time);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
