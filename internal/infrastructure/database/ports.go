package database

import (
	"context"
	"database/sql"
)

// Database is the narrow query interface repositories depend on. The
// production implementation wraps sqlx; tests substitute fakes.
type Database interface {
	// Get executes a query expected to return a single row and scans it
	// into dest.
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error

	// Select executes a query returning multiple rows and scans them into
	// the dest slice.
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error

	// Execute runs a statement that does not return rows.
	Execute(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

	// QueryRow runs a query returning at most one row for manual scanning.
	QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row

	// Close releases the underlying connection pool.
	Close() error
}
