package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path of the shared database
func DBPath() string {
	return filepath.Join("data", "travel-terminal.db")
}

// Open opens (creating if needed) the SQLite database at dbPath and ensures the schema.
// ":memory:" is accepted for tests.
func Open(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", dbPath, err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("verifying database %q: %w", dbPath, err)
	}

	if dbPath != ":memory:" {
		_, _ = db.Exec("PRAGMA journal_mode=WAL")
		_, _ = db.Exec("PRAGMA synchronous=NORMAL")
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the application tables if they do not exist.
// It is safe to call repeatedly and never drops data.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS countries (
			name TEXT PRIMARY KEY,
			capital TEXT,
			region TEXT NOT NULL,
			population INTEGER NOT NULL,
			flag_url TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			fetched_at INTEGER NOT NULL -- unix seconds
		);

		CREATE TABLE IF NOT EXISTS search_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			search_id TEXT NOT NULL,
			country TEXT NOT NULL,
			total INTEGER NOT NULL,
			advice TEXT NOT NULL,
			distance_km REAL NOT NULL,
			created_at INTEGER NOT NULL -- unix seconds
		);
		CREATE INDEX IF NOT EXISTS idx_search_history_created ON search_history(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// TableExists reports whether a table with the given name exists
func TableExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for %s table: %w", name, err)
	}
	return count > 0, nil
}
