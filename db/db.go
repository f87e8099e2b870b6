// ABOUTME: Database connection management and initialization
// ABOUTME: Opens a session-scoped in-memory SQLite database that disappears on exit
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// memoryDSN keeps foreign keys on; every connection to ":memory:" is its own
// database, so the pool is pinned to one connection below.
const memoryDSN = "file::memory:?_foreign_keys=on"

func OpenDatabase() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		return nil, err
	}

	// One connection that is never recycled, otherwise the data goes with it
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	// Initialize schema
	if err := InitSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
