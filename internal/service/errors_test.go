package service

import (
	"errors"
	"testing"

	"github.com/phrazzld/digitalshop-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceServiceError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewInvoiceServiceError("create_invoice", "failed to save invoice", store.ErrDuplicate)

		assert.Equal(t, "invoice service create_invoice failed: failed to save invoice: entity already exists", err.Error())
		assert.ErrorIs(t, err, store.ErrDuplicate)

		var serviceErr *InvoiceServiceError
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, "create_invoice", serviceErr.Operation)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewInvoiceServiceError("list_invoices", "no store", nil)

		assert.Equal(t, "invoice service list_invoices failed: no store", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
