// Package database is the valuation history store of the stand-in backend.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the history database, creating its directory on first run.
// ":memory:" is passed through untouched. A path sqlite cannot open fails
// here rather than on the first request.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// one writer: batch imports and /predict share the connection
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	return db, nil
}

// WithTx runs fn in a transaction bound to ctx. A batch import or seed
// either lands completely or not at all.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Now is the created_at clock: UTC, whole seconds, so stored timestamps
// order correctly as text.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
