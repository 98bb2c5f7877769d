// Package database provides the SQLite connection for the transaction
// history store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the database connection.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates the history database connection, creating the parent
// directory and applying the schema if needed. A "file:" URI path is used
// as-is so tests can run against in-memory databases.
func Open(path string) (*DB, error) {
	if !strings.HasPrefix(path, "file:") {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		path = absPath
	}

	conn, err := sql.Open("sqlite", connString(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc.org/sqlite serializes writes; a single writer connection
	// avoids SQLITE_BUSY under concurrent handlers.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		return nil, err
	}
	return db, nil
}

func connString(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	pragmas := []string{
		"_pragma=journal_mode(WAL)",
		"_pragma=synchronous(NORMAL)",
		"_pragma=busy_timeout(5000)",
		"_pragma=foreign_keys(ON)",
	}
	return "file:" + path + "?" + strings.Join(pragmas, "&")
}

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	trans_date_trans_time TEXT NOT NULL,
	merchant TEXT NOT NULL,
	category TEXT NOT NULL,
	amt REAL NOT NULL,
	gender TEXT NOT NULL,
	state TEXT NOT NULL,
	job TEXT NOT NULL,
	city_pop INTEGER NOT NULL,
	lat REAL,
	long REAL,
	merch_lat REAL NOT NULL,
	merch_lon REAL NOT NULL,
	dist REAL NOT NULL,
	prediction INTEGER NOT NULL,
	risk_score REAL NOT NULL,
	is_fraud INTEGER NOT NULL,
	risk_level TEXT NOT NULL,
	action_taken TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_position ON transactions(position);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at);
`

func (d *DB) migrate() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Conn exposes the underlying connection for repositories.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Close closes the connection.
func (d *DB) Close() error {
	return d.conn.Close()
}
