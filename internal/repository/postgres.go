package repository

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// NewPostgresDB creates and initializes a PostgreSQL database connection
func NewPostgresDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Create tables
	if err := createPostgresTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createPostgresTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS pairings (
		id TEXT PRIMARY KEY,
		android_device_id TEXT NOT NULL,
		android_device_name TEXT NOT NULL,
		mac_device_id TEXT NOT NULL,
		mac_device_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_pairings_mac_id ON pairings(mac_device_id);
	CREATE INDEX IF NOT EXISTS idx_pairings_android_id ON pairings(android_device_id);
	CREATE INDEX IF NOT EXISTS idx_pairings_status ON pairings(status);

	-- At most one active pairing per device on either side. Under READ
	-- COMMITTED two racing creates can both pass the cascade lookup; the
	-- second INSERT then fails here instead of committing a duplicate, and
	-- the caller retries.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_pairings_android_active
		ON pairings(android_device_id) WHERE status = 'active';
	CREATE UNIQUE INDEX IF NOT EXISTS idx_pairings_mac_active
		ON pairings(mac_device_id) WHERE status = 'active';

	CREATE TABLE IF NOT EXISTS clipboard_items (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		pairing_id TEXT NOT NULL REFERENCES pairings(id),
		content TEXT NOT NULL,
		source_device_id TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_clipboard_items_pairing_id ON clipboard_items(pairing_id);
	`

	_, err := db.Exec(schema)
	return err
}
