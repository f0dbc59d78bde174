package store

import (
	"fmt"
	"strings"
)

// The DDL below sticks to types all three supported engines share. Epoch
// milliseconds are stored as BIGINT so session expiry comparisons are plain
// integer comparisons regardless of driver.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			username VARCHAR(64) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL,
			created_at BIGINT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at BIGINT NOT NULL,
			expires_at BIGINT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(64) PRIMARY KEY,
			slug VARCHAR(80) NOT NULL UNIQUE,
			name VARCHAR(140) NOT NULL,
			category VARCHAR(80) NOT NULL,
			short_description VARCHAR(240) NOT NULL,
			description TEXT NOT NULL,
			specs_json TEXT NOT NULL,
			images_json TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,

		s.indexStmt("idx_sessions_expires_at", "sessions", "expires_at"),
		s.indexStmt("idx_sessions_user_id", "sessions", "user_id"),
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			// MySQL has no CREATE INDEX IF NOT EXISTS; treat a duplicate
			// index as a no-op so migrations stay idempotent.
			if strings.Contains(err.Error(), "Duplicate key name") {
				continue
			}
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

func (s *Store) indexStmt(name, table, column string) string {
	if s.driver == "mysql" {
		return fmt.Sprintf("CREATE INDEX %s ON %s(%s)", name, table, column)
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", name, table, column)
}
