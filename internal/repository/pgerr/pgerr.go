// Package pgerr maps PostgreSQL constraint violations to domain errors.
// Uniqueness in this schema is enforced by the database, so a concurrent
// duplicate write surfaces here as a unique-violation error that the
// repositories translate instead of crashing.
package pgerr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether the error is a unique-constraint
// violation. When constraint is non-empty, the violated constraint must
// match it by name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
