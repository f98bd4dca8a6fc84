package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_Validate(t *testing.T) {
	for _, s := range PaymentStatuses {
		assert.NoError(t, s.Validate(), "status %s", s)
	}

	assert.ErrorIs(t, PaymentStatus("").Validate(), ErrInvalidPaymentStatus)
	assert.ErrorIs(t, PaymentStatus("pending").Validate(), ErrInvalidPaymentStatus)
}

func TestPaymentMethod_Validate(t *testing.T) {
	for _, m := range PaymentMethods {
		assert.NoError(t, m.Validate(), "method %s", m)
		assert.True(t, m.IsSet())
	}

	assert.NoError(t, PaymentMethod("").Validate(), "unset method is valid")
	assert.ErrorIs(t, PaymentMethod("BARTER").Validate(), ErrInvalidPaymentMethod)
}
