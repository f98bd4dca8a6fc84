package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{
			name:     "wrapped generic error",
			err:      fmt.Errorf("failed to do something: %w", errors.New("some error")),
			expected: false,
		},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{name: "ErrProductNotFound", err: ErrProductNotFound, expected: true},
		{name: "ErrInvoiceNotFound", err: ErrInvoiceNotFound, expected: true},
		{
			name:     "wrapped ErrInvoiceNotFound",
			err:      fmt.Errorf("failed to load invoice: %w", ErrInvoiceNotFound),
			expected: true,
		},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert invoice: %w", ErrDuplicate)))
}

func TestEntityNotFoundErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrUserNotFound, ErrProductNotFound))
	assert.False(t, errors.Is(ErrProductNotFound, ErrInvoiceNotFound))
	assert.Equal(t, "entity not found: invoice", ErrInvoiceNotFound.Error())
}

func TestStoreError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		originalErr := errors.New("database connection failed")
		storeErr := NewStoreError("invoice", "create", "database error", originalErr)

		assert.Equal(t,
			"create operation on invoice failed: database error: database connection failed",
			storeErr.Error())
		assert.Equal(t, originalErr, storeErr.Unwrap())
		assert.True(t, errors.Is(storeErr, originalErr))

		var target *StoreError
		assert.True(t, errors.As(fmt.Errorf("outer: %w", storeErr), &target))
		assert.Equal(t, "invoice", target.Entity)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		storeErr := NewStoreError("product", "get", "row missing", nil)

		assert.Equal(t, "get operation on product failed: row missing", storeErr.Error())
		assert.Nil(t, storeErr.Unwrap())
	})
}
