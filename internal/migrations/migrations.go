package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Create students and accounts tables",
		Up: `
			-- seq keeps insertion order for the roster view
			CREATE TABLE IF NOT EXISTS students (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				chinese REAL NOT NULL,
				math REAL NOT NULL,
				english REAL NOT NULL,
				total REAL NOT NULL,
				average REAL NOT NULL
			);

			CREATE TABLE IF NOT EXISTS accounts (
				identity TEXT PRIMARY KEY,
				password TEXT NOT NULL,
				role TEXT NOT NULL CHECK (role IN ('admin', 'student'))
			);
		`,
		Down: `
			DROP TABLE IF EXISTS accounts;
			DROP TABLE IF EXISTS students;
		`,
	},
	{
		Version: 2,
		Name:    "Index accounts by role",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_accounts_role ON accounts(role);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_accounts_role;
		`,
	},
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Create migrations tracking table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	// Apply pending migrations
	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		if _, err := db.Exec(migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
