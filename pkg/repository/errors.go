package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// ErrConstraint indicates a row was rejected by a check constraint.
var ErrConstraint = errors.New("constraint violation")

// MapError translates driver errors into domain errors. sql.ErrNoRows becomes
// notFound, a unique violation becomes duplicate, and a check violation wraps
// ErrConstraint. Anything else is returned as-is.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return duplicate
		case pgCheckViolation:
			return errors.Join(ErrConstraint, err)
		}
	}

	return err
}
