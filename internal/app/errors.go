package app

import (
	"fmt"
	"strings"
)

// ErrConnection reports a failure to open or release the database session.
type ErrConnection struct {
	Cause error
}

func (e *ErrConnection) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ErrConnection) Unwrap() error {
	return e.Cause
}

// ErrQuery reports a failed statement. Query is the statement text as sent.
type ErrQuery struct {
	Query string
	Cause error
}

func (e *ErrQuery) Error() string {
	stmt := strings.TrimSuffix(strings.TrimSpace(e.Query), ";")
	if stmt == "" {
		return fmt.Sprintf("query error: %v", e.Cause)
	}
	return fmt.Sprintf("query error: %v (running %s)", e.Cause, stmt)
}

func (e *ErrQuery) Unwrap() error {
	return e.Cause
}

// ErrConfig reports invalid connection settings, detected before any
// connection attempt.
type ErrConfig struct {
	Cause error
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("config error: %v", e.Cause)
}

func (e *ErrConfig) Unwrap() error {
	return e.Cause
}
