package initdb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const memoryPath = ":memory:"

// openDB opens the SQLite database at path with foreign key enforcement
// enabled. The pool is limited to a single connection so that an in-memory
// database survives between statements.
func openDB(ctx context.Context, path string, readOnly bool) (*sql.DB, error) {
	dsn, err := dataSourceName(path, readOnly)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// dataSourceName builds a file: URI for path. The path is made absolute and
// escaped so that '?', '#' and '%' in file names reach SQLite unchanged.
func dataSourceName(path string, readOnly bool) (string, error) {
	query := "_foreign_keys=on"
	if path == memoryPath {
		return memoryPath + "?" + query, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	if readOnly {
		query = "mode=ro&" + query
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: query}
	return u.String(), nil
}

// execScript creates the database file at path and applies schema to it.
func execScript(ctx context.Context, path, schema string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to create database file: %w", err)
	}
	f.Close()

	db, err := openDB(ctx, path, false)
	if err != nil {
		return err
	}
	defer db.Close()
	return applySchema(ctx, db, schema)
}

// applySchema executes the whole script as one batch inside a transaction.
// Scripts that open their own transaction, such as the output of the sqlite3
// .dump command, are rolled back and run again as-is.
func applySchema(ctx context.Context, db *sql.DB, schema string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		tx.Rollback()
		if !strings.Contains(err.Error(), "cannot start a transaction within a transaction") {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
		if _, err := db.ExecContext(ctx, schema); err != nil {
			// undo the script's own open transaction, if any
			db.ExecContext(ctx, "ROLLBACK")
			return fmt.Errorf("failed to execute schema: %w", err)
		}
		return nil
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// SQLiteVersion returns the version of the linked SQLite library.
func SQLiteVersion(ctx context.Context) (string, error) {
	db, err := openDB(ctx, memoryPath, false)
	if err != nil {
		return "", err
	}
	defer db.Close()

	var version string
	if err := db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query sqlite version: %w", err)
	}
	return version, nil
}
