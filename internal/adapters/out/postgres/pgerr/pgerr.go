// Package pgerr classifies PostgreSQL errors surfaced through gorm.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories react to.
const (
	ForeignKeyViolation    = "23503"
	UniqueViolation        = "23505"
	NumericValueOutOfRange = "22003"
)

// Code returns the SQLSTATE of err, or "" when err did not come from the server.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Constraint returns the name of the violated constraint, if any.
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func IsForeignKeyViolation(err error) bool { return Code(err) == ForeignKeyViolation }

func IsUniqueViolation(err error) bool { return Code(err) == UniqueViolation }

func IsNumericValueOutOfRange(err error) bool { return Code(err) == NumericValueOutOfRange }
