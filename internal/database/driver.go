package database

import "context"

// Driver defines the operations a single fetch run needs from a database.
// A Driver holds at most one open connection and is not reused across runs.
type Driver interface {
	// Connect opens the connection and verifies it is usable.
	Connect(ctx context.Context, dsn string) error

	// Close releases the connection. It is safe to call when not connected.
	Close() error

	// ExecuteQuery runs a SQL query and materializes every row.
	ExecuteQuery(ctx context.Context, query string) (*ResultSet, error)

	// DatabaseName returns the name of the connected database.
	DatabaseName() string
}
