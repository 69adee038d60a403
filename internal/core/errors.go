package core

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")

	ErrUnauthorized = errors.New("unauthorized")
)

// Postgres error codes mapped onto service errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// dbError wraps a database error with context, translating missing rows and
// constraint violations into ErrNotFound, ErrConflict and ErrInvalid.
func dbError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: duplicate value violates %s", msg, ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", msg, ErrConflict, pgErr.Detail)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w: violates %s", msg, ErrInvalid, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// invalidf returns an ErrInvalid with a formatted reason.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// conflictf returns an ErrConflict with a formatted reason.
func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// notFound reports a missing row when an UPDATE or DELETE touched nothing.
func notFound(tag pgconn.CommandTag, format string, args ...any) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return nil
}
