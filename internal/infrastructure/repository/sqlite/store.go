// Package sqlite implements the record store on a single SQLite database,
// one table per entity with textual primary keys.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Open opens (and creates if needed) the database file with WAL mode and a
// busy timeout so that the sweeper and request handlers can write
// concurrently.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = "./data/offerdesk.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const query = `
CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	contact TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS offers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT '',
	customer_id TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	offer_id TEXT NOT NULL DEFAULT '',
	text TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tagged_files (
	id TEXT PRIMARY KEY,
	original_name TEXT NOT NULL DEFAULT '',
	stored_name TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	offer_id TEXT NOT NULL DEFAULT '',
	uploaded_at TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_offers_customer_id ON offers(customer_id);
CREATE INDEX IF NOT EXISTS idx_comments_offer_id ON comments(offer_id);
CREATE INDEX IF NOT EXISTS idx_tagged_files_offer_id ON tagged_files(offer_id);
`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	return nil
}

// nextSequentialID returns max numeric id + 1 for the table, or "1" when
// the table is empty. Must run inside the insert's transaction.
func nextSequentialID(ctx context.Context, tx *sql.Tx, table string) (string, error) {
	var maxID sql.NullInt64
	row := tx.QueryRowContext(ctx, `SELECT MAX(CAST(id AS INTEGER)) FROM `+table)
	if err := row.Scan(&maxID); err != nil {
		return "", fmt.Errorf("select max id: %w", err)
	}
	if !maxID.Valid {
		return "1", nil
	}
	return strconv.FormatInt(maxID.Int64+1, 10), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
