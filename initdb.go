// Package initdb creates a SQLite database file from a SQL schema script and
// verifies the result. It is the library behind the initdb command.
//
// Features:
//   - Refuses to touch an existing database unless forced
//   - Optional backup of the replaced database
//   - Applies the whole script in one transaction
//   - Verifies that tables were created and reads the schema version marker
//   - Serializes concurrent initializers of the same path with a lock file
//
// Usage:
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "github.com/jes/initdb"
//	)
//
//	func main() {
//	    report, err := initdb.Init(context.Background(), initdb.Options{
//	        Path:       "data/tagbox.db",
//	        SchemaPath: "init-database.sql",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    log.Printf("%d tables, schema version %s", report.TableCount(), report.SchemaVersion)
//	}
package initdb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Logger receives diagnostics from Init. *logging.Logger satisfies it.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}

// Options configures Init.
type Options struct {
	Path       string // target database file
	SchemaPath string // SQL script applied to the new database
	Force      bool   // delete an existing database instead of failing
	Backup     bool   // with Force, keep the old file as Path+".backup"
	Verbose    bool
	Logger     Logger
}

func (o *Options) logger() Logger {
	if o.Logger == nil {
		return nopLogger{}
	}
	return o.Logger
}

// Init creates the database at opts.Path from the script at opts.SchemaPath
// and returns a report describing the result.
//
// The schema file is checked before the target is looked at, so a missing
// script never deletes or creates a database file. If the target exists and
// opts.Force is not set, Init returns an error wrapping ErrAlreadyExists and
// leaves the file alone.
func Init(ctx context.Context, opts Options) (*Report, error) {
	if opts.Path == "" {
		return nil, errors.New("database path is required")
	}
	log := opts.logger()

	if _, err := os.Stat(opts.SchemaPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, opts.SchemaPath)
		}
		return nil, fmt.Errorf("failed to stat schema file: %w", err)
	}

	dbDir := filepath.Dir(opts.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	unlock, err := lockPath(opts.Path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := os.Stat(opts.Path); err == nil {
		if !opts.Force {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, opts.Path)
		}
		if opts.Backup {
			backupPath := opts.Path + ".backup"
			if err := copyFile(opts.Path, backupPath); err != nil {
				return nil, fmt.Errorf("failed to create backup: %w", err)
			}
			log.Infof("Backed up existing database to %s", backupPath)
		}
		log.Warnf("Removing existing database: %s", opts.Path)
		if err := os.Remove(opts.Path); err != nil {
			return nil, fmt.Errorf("failed to remove existing database: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat database file: %w", err)
	}

	schema, err := os.ReadFile(opts.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	if opts.Verbose {
		log.Infof("Executing SQL initialization script...")
	}
	if err := execScript(ctx, opts.Path, string(schema)); err != nil {
		return nil, &ExecutionError{Path: opts.Path, Err: err}
	}

	report, err := verifyFile(ctx, opts.Path)
	if err != nil {
		return nil, err
	}
	if report.TableCount() == 0 {
		return report, ErrEmptySchema
	}
	report.SchemaHash = schemaHash(string(schema))
	return report, nil
}

// Validate applies schema to an in-memory database and verifies it the same
// way Init does. Nothing is written to disk.
func Validate(ctx context.Context, schema string) (*Report, error) {
	db, err := openDB(ctx, memoryPath, false)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := applySchema(ctx, db, schema); err != nil {
		return nil, &ExecutionError{Path: memoryPath, Err: err}
	}
	report, err := verify(ctx, db, memoryPath)
	if err != nil {
		return nil, err
	}
	report.SchemaHash = schemaHash(schema)
	if report.TableCount() == 0 {
		return report, ErrEmptySchema
	}
	return report, nil
}

// Inspect reports on an existing database without modifying it. Unlike Init,
// a database without tables is not an error.
func Inspect(ctx context.Context, path string) (*Report, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat database file: %w", err)
	}
	db, err := openDB(ctx, path, true)
	if err != nil {
		return nil, &VerificationError{Path: path, Err: err}
	}
	defer db.Close()

	report, err := verify(ctx, db, path)
	if err != nil {
		return nil, err
	}
	if err := report.stat(); err != nil {
		return nil, &VerificationError{Path: path, Err: err}
	}
	return report, nil
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Close()
}
