package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/digitalshop-api/internal/store"
)

// SQLSTATE codes the stores translate.
const (
	uniqueViolationCode        = "23505"
	foreignKeyViolationCode    = "23503"
	checkViolationCode         = "23514"
	notNullViolationCode       = "23502"
	numericValueOutOfRangeCode = "22003"
)

// violation describes how one SQLSTATE code surfaces as a store error.
type violation struct {
	sentinel error
	label    string
	// byColumn reports the column instead of the constraint name.
	byColumn bool
}

var violations = map[string]violation{
	uniqueViolationCode:     {sentinel: store.ErrDuplicate, label: "unique violation"},
	foreignKeyViolationCode: {sentinel: store.ErrInvalidEntity, label: "foreign key violation"},
	checkViolationCode:      {sentinel: store.ErrInvalidEntity, label: "check constraint violation"},
	notNullViolationCode:    {sentinel: store.ErrInvalidEntity, label: "not null violation", byColumn: true},
	numericValueOutOfRangeCode: {
		sentinel: store.ErrInvalidEntity,
		label:    "numeric value out of range",
		byColumn: true,
	},
}

// MapError maps a database error to the matching store sentinel, wrapping the
// original so that errors.Is/errors.As still reach the driver error.
// Errors without a specific mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	v, ok := violations[pgErr.Code]
	if !ok {
		return err
	}

	subject := pgErr.ConstraintName
	if v.byColumn {
		subject = pgErr.ColumnName
	}
	if subject == "" {
		return fmt.Errorf("%w: %s: %w", v.sentinel, v.label, err)
	}
	return fmt.Errorf("%w: %s (%s): %w", v.sentinel, v.label, subject, err)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation, as raised when an invoice references an unknown user or product.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
