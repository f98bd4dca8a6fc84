package domain

import (
	"fmt"

	"github.com/samber/lo"
)

// PaymentStatus represents the settlement state of an invoice.
type PaymentStatus string

// Possible payment status values
const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentStatuses lists every valid PaymentStatus.
var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Validate returns ErrInvalidPaymentStatus if s is not a known status.
func (s PaymentStatus) Validate() error {
	if !lo.Contains(PaymentStatuses, s) {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, string(s))
	}
	return nil
}

// PaymentMethod represents how an invoice is (or will be) paid.
// The zero value means no method has been chosen yet.
type PaymentMethod string

// Possible payment method values
const (
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard      PaymentMethod = "DEBIT_CARD"
	PaymentMethodPayPal         PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

// PaymentMethods lists every valid, non-empty PaymentMethod.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodPayPal,
	PaymentMethodBankTransfer,
	PaymentMethodCashOnDelivery,
}

func (m PaymentMethod) String() string {
	return string(m)
}

// IsSet reports whether a payment method has been chosen.
func (m PaymentMethod) IsSet() bool {
	return m != ""
}

// Validate returns ErrInvalidPaymentMethod if m is neither empty nor a known method.
func (m PaymentMethod) Validate() error {
	if m.IsSet() && !lo.Contains(PaymentMethods, m) {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, string(m))
	}
	return nil
}
