// Package repository holds the SQL data access of the development backend.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when no row matches a lookup.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock is returned when a withdrawal exceeds stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
