package repository

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates and initializes a SQLite database
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Create tables
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
	-- Pairings table (one Android device bound to one Mac)
	CREATE TABLE IF NOT EXISTS pairings (
		id TEXT PRIMARY KEY,
		android_device_id TEXT NOT NULL,
		android_device_name TEXT NOT NULL,
		mac_device_id TEXT NOT NULL,
		mac_device_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_pairings_mac_id ON pairings(mac_device_id);
	CREATE INDEX IF NOT EXISTS idx_pairings_android_id ON pairings(android_device_id);
	CREATE INDEX IF NOT EXISTS idx_pairings_status ON pairings(status);

	-- At most one active pairing per device on either side. Enforced by the
	-- database so racing creates cannot both commit; the loser retries.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_pairings_android_active
		ON pairings(android_device_id) WHERE status = 'active';
	CREATE UNIQUE INDEX IF NOT EXISTS idx_pairings_mac_active
		ON pairings(mac_device_id) WHERE status = 'active';

	-- Clipboard items (encrypted content, seq is the insertion order key)
	CREATE TABLE IF NOT EXISTS clipboard_items (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		pairing_id TEXT NOT NULL REFERENCES pairings(id),
		content TEXT NOT NULL,
		source_device_id TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_clipboard_items_pairing_id ON clipboard_items(pairing_id);
	`

	_, err := db.Exec(schema)
	return err
}
