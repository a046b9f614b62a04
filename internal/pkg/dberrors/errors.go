package dberrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes inspected by the repositories
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNumericOverflow     = "22003"
	classIntegrity          = "23"
)

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint. An empty constraint name matches any unique violation.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == codeUniqueViolation &&
		(constraintName == "" || pgErr.ConstraintName == constraintName)
}

// IsForeignKeyViolation checks for a referential integrity violation
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == codeForeignKeyViolation
}

// IsConstraintViolation checks for any integrity constraint violation (SQLSTATE class 23)
func IsConstraintViolation(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && len(pgErr.Code) == 5 && pgErr.Code[:2] == classIntegrity
}

// IsNumericOverflow checks if a value did not fit the precision of a numeric column
func IsNumericOverflow(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == codeNumericOverflow
}

// Classify tags err with the matching apperrors sentinel while keeping the driver error
// reachable through errors.As. Errors that are not constraint or overflow failures are
// returned as they are.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsNumericOverflow(err):
		return fmt.Errorf("%w: %w", apperrors.ErrSalaryOverflow, err)
	case IsConstraintViolation(err):
		return fmt.Errorf("%w: %w", apperrors.ErrConstraintViolation, err)
	default:
		return err
	}
}
