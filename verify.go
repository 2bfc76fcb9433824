package initdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// UnknownVersion is reported when the database carries no schema version marker.
const UnknownVersion = "unknown"

// Report summarizes a database after initialization.
type Report struct {
	Path          string
	Tables        []string // sorted by name
	Size          int64    // bytes on disk
	SchemaVersion string
	SchemaHash    string // SHA256 of the normalized script, if one was applied
}

// TableCount returns the number of tables in the database.
func (r *Report) TableCount() int {
	return len(r.Tables)
}

// SizeString returns the database size in human units.
func (r *Report) SizeString() string {
	return FormatSize(r.Size)
}

func (r *Report) stat() error {
	fi, err := os.Stat(r.Path)
	if err != nil {
		return err
	}
	r.Size = fi.Size()
	return nil
}

// verifyFile reopens the database at path and builds its report.
func verifyFile(ctx context.Context, path string) (*Report, error) {
	db, err := openDB(ctx, path, false)
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

func verify(ctx context.Context, db *sql.DB, path string) (*Report, error) {
	tables, err := GetTables(ctx, db)
	if err != nil {
		return nil, &VerificationError{Path: path, Err: err}
	}
	return &Report{
		Path:          path,
		Tables:        tables,
		SchemaVersion: schemaVersion(ctx, db),
	}, nil
}

// GetTables returns the names of all tables in the database, sorted by name.
func GetTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

// schemaVersion reads the schema_version row from system_config. A missing
// table, row or value is not an error.
func schemaVersion(ctx context.Context, db *sql.DB) string {
	var v sql.NullString
	err := db.QueryRowContext(ctx, "SELECT value FROM system_config WHERE key='schema_version'").Scan(&v)
	if err != nil || !v.Valid {
		return UnknownVersion
	}
	return v.String
}

// FormatSize renders n bytes as bytes, KB or MB.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

// schemaHash returns a SHA256 hash of the normalized schema
func schemaHash(schema string) string {
	hash := sha256.Sum256([]byte(normalizeSchema(schema)))
	return hex.EncodeToString(hash[:])
}

// normalizeSchema removes comments and normalizes whitespace for consistent hashing
func normalizeSchema(schema string) string {
	lines := strings.Split(schema, "\n")
	var normalized []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		normalized = append(normalized, line)
	}

	return strings.Join(normalized, " ")
}
