package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/digitalshop-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
		contains string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: nil,
		},
		{
			name:     "no rows",
			err:      sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "wrapped no rows",
			err:      fmt.Errorf("scan: %w", sql.ErrNoRows),
			expected: store.ErrNotFound,
		},
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"},
			expected: store.ErrDuplicate,
			contains: "users_email_key",
		},
		{
			name:     "foreign key violation",
			err:      &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "invoice_products_product_id_fkey"},
			expected: store.ErrInvalidEntity,
			contains: "invoice_products_product_id_fkey",
		},
		{
			name:     "check violation",
			err:      &pgconn.PgError{Code: checkViolationCode, ConstraintName: "invoices_payment_status_check"},
			expected: store.ErrInvalidEntity,
			contains: "check constraint violation",
		},
		{
			name:     "not null violation",
			err:      &pgconn.PgError{Code: notNullViolationCode, ColumnName: "user_id"},
			expected: store.ErrInvalidEntity,
			contains: "user_id",
		},
		{
			name:     "numeric value out of range",
			err:      &pgconn.PgError{Code: numericValueOutOfRangeCode, Message: "numeric field overflow"},
			expected: store.ErrInvalidEntity,
			contains: "numeric value out of range: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)

			if tt.expected == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.expected)
			assert.ErrorIs(t, mapped, tt.err, "the driver error must stay reachable")
			if tt.contains != "" {
				assert.Contains(t, mapped.Error(), tt.contains)
			}
		})
	}
}

func TestMapError_UnmappedPassThrough(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Same(t, plain, MapError(plain))

	other := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(other), MapError(other))
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "foreign key", err: &pgconn.PgError{Code: foreignKeyViolationCode}, want: true},
		{name: "wrapped foreign key", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: foreignKeyViolationCode}), want: true},
		{name: "unique", err: &pgconn.PgError{Code: uniqueViolationCode}},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsForeignKeyViolation(tt.err))
		})
	}
}
