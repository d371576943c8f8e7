package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joacominatel/datafetch/internal/database"
)

// ErrNotConnected is returned when an operation needs an open connection.
var ErrNotConnected = errors.New("not connected")

// Opener turns a parsed connection config into a database handle.
type Opener func(cfg *pgx.ConnConfig) (*sql.DB, error)

// Option configures a Driver.
type Option func(*Driver)

// WithOpener replaces the pgx stdlib opener, mainly for tests.
func WithOpener(open Opener) Option {
	return func(d *Driver) {
		d.open = open
	}
}

// Driver implements the database.Driver interface for PostgreSQL.
// It pins exactly one session for its whole lifetime.
type Driver struct {
	open   Opener
	db     *sql.DB
	conn   *sql.Conn
	dbName string
}

// New creates a new PostgreSQL driver.
func New(opts ...Option) *Driver {
	d := &Driver{open: openStdlib}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func openStdlib(cfg *pgx.ConnConfig) (*sql.DB, error) {
	return stdlib.OpenDB(*cfg), nil
}

// Connect opens a single session to PostgreSQL and pings it.
func (d *Driver) Connect(ctx context.Context, dsn string) error {
	if d.conn != nil {
		return fmt.Errorf("connect: already connected to %q", d.dbName)
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}
	if _, ok := cfg.RuntimeParams["application_name"]; !ok {
		cfg.RuntimeParams["application_name"] = applicationName
	}

	db, err := d.open(cfg)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("connect: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return fmt.Errorf("ping: %w", err)
	}

	d.db = db
	d.conn = conn
	d.dbName = cfg.Database
	return nil
}

// Close releases the session and the handle behind it.
func (d *Driver) Close() error {
	if d.db == nil {
		return nil
	}
	err := errors.Join(d.conn.Close(), d.db.Close())
	d.conn = nil
	d.db = nil
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// ExecuteQuery runs a SQL query and materializes every row.
// A failure while reading rows discards everything read so far.
func (d *Driver) ExecuteQuery(ctx context.Context, query string) (*database.ResultSet, error) {
	if d.conn == nil {
		return nil, ErrNotConnected
	}

	start := time.Now()

	rows, err := d.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}
	columns := make([]database.Column, len(types))
	for i, ct := range types {
		columns[i] = database.Column{Name: ct.Name(), DataType: ct.DatabaseTypeName()}
	}

	var resultRows [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		resultRows = append(resultRows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return &database.ResultSet{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: len(resultRows),
		Duration: time.Since(start),
	}, nil
}

// DatabaseName returns the name of the connected database.
func (d *Driver) DatabaseName() string {
	return d.dbName
}
