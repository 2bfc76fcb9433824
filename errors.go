package initdb

import "errors"

var (
	// ErrAlreadyExists is returned by Init when the target database exists
	// and force mode was not requested.
	ErrAlreadyExists = errors.New("database already exists")

	// ErrSchemaNotFound is returned when the schema script does not exist.
	ErrSchemaNotFound = errors.New("SQL initialization file not found")

	// ErrEmptySchema is returned when the script ran without error but no
	// tables exist afterwards.
	ErrEmptySchema = errors.New("no tables were created in the database")

	// ErrNotFound is returned by Inspect for a missing database file.
	ErrNotFound = errors.New("database does not exist")
)

// ExecutionError reports a failure to apply the schema script.
type ExecutionError struct {
	Path string
	Err  error
}

func (e *ExecutionError) Error() string {
	return "failed to execute SQL script on " + e.Path + ": " + e.Err.Error()
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// VerificationError reports a failure to introspect the database after the
// script was applied.
type VerificationError struct {
	Path string
	Err  error
}

func (e *VerificationError) Error() string {
	return "failed to verify database " + e.Path + ": " + e.Err.Error()
}

func (e *VerificationError) Unwrap() error { return e.Err }
