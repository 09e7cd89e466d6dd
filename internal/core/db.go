package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB defines the database operations used by the services.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ErrNotFound is returned when an id-based lookup, update, or delete
// matches no row.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition is returned when a status write is not allowed by
// the order lifecycle table.
var ErrInvalidTransition = errors.New("invalid status transition")

// isNoRows folds the pgx sentinel into our own.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
