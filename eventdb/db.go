// Package eventdb persists event tables and per-event aggregation runs
// in SQLite. The schema is managed with golang-migrate; each saved
// table and aggregation run is keyed by a generated UUID so results
// from repeated analyses can sit side by side.
package eventdb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}
	return &DB{db}, nil
}
