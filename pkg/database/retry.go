package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes for integrity violations
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// IsTransient reports whether err is a connectivity failure worth one retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

// IsConstraintViolation reports whether err is a foreign key, unique or check violation.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation:
		return true
	}
	return false
}

// RetryRead runs a pure read and retries it exactly once on a transient failure.
// Never use it for writes.
func RetryRead[T any](ctx context.Context, read func(ctx context.Context) (T, error)) (T, error) {
	v, err := read(ctx)
	if err == nil || !IsTransient(err) || ctx.Err() != nil {
		return v, err
	}
	return read(ctx)
}
