package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common validation errors for Invoice
var (
	ErrEmptyInvoiceID       = errors.New("invoice ID cannot be empty")
	ErrEmptyInvoiceUser     = errors.New("invoice must reference a user")
	ErrEmptyInvoiceProducts = errors.New("invoice must reference at least one product")
)

// Invoice records a purchase: the user who made it, the products bought
// (in the order they were submitted), and the monetary totals supplied at
// checkout. User and Products are references to records owned elsewhere.
//
// SubTotal + Tax is expected to equal TotalPrice, but the values are taken
// from the caller as given and are not recomputed here.
type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	User          *User           `json:"user"`
	Products      []*Product      `json:"products"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	Tax           decimal.Decimal `json:"tax"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewInvoice creates a new Invoice for user covering products.
// It generates a new UUID, sets the payment status to pending with no
// payment method, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewInvoice(
	user *User,
	products []*Product,
	subTotal, tax, totalPrice decimal.Decimal,
) (*Invoice, error) {
	now := timestamp()
	invoice := &Invoice{
		ID:            uuid.New(),
		User:          user,
		Products:      products,
		SubTotal:      subTotal,
		Tax:           tax,
		TotalPrice:    totalPrice,
		PaymentStatus: PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	return invoice, nil
}

// Validate checks if the Invoice has valid data.
// Returns an error if any field fails validation.
func (i *Invoice) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyInvoiceID
	}

	if i.User == nil || i.User.ID == uuid.Nil {
		return ErrEmptyInvoiceUser
	}

	if len(i.Products) == 0 {
		return ErrEmptyInvoiceProducts
	}
	for idx, p := range i.Products {
		if p == nil || p.ID == uuid.Nil {
			return NewValidationError("products", fmt.Sprintf("contains an empty reference at position %d", idx), ErrValidation)
		}
	}

	if err := i.PaymentStatus.Validate(); err != nil {
		return err
	}

	return i.PaymentMethod.Validate()
}

// UserID returns the id of the owning user, or uuid.Nil if none is set.
func (i *Invoice) UserID() uuid.UUID {
	if i.User == nil {
		return uuid.Nil
	}
	return i.User.ID
}

// ProductIDs returns the ids of the referenced products in stored order.
func (i *Invoice) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(i.Products))
	for _, p := range i.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

// UpdatePayment overwrites the payment status and method and updates the
// UpdatedAt timestamp. No other field is touched.
// Returns an error if either value is invalid.
func (i *Invoice) UpdatePayment(status PaymentStatus, method PaymentMethod) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := method.Validate(); err != nil {
		return err
	}

	i.PaymentStatus = status
	i.PaymentMethod = method
	i.UpdatedAt = timestamp()
	return nil
}

// timestamp returns the current UTC time at the microsecond precision
// TIMESTAMPTZ columns keep.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
