package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Amounts are stored as NUMERIC(12,2).
const amountScale = 2

var amountLimit = decimal.New(1, 12-amountScale)

// CreateInvoiceRequest represents the request payload for creating a new invoice.
// The monetary values are recorded as given; SubTotal + Tax is not checked
// against TotalPrice.
type CreateInvoiceRequest struct {
	UserID     uuid.UUID       `json:"userId"     validate:"required"`
	ProductIDs []uuid.UUID     `json:"productIds" validate:"required,min=1,dive,required"`
	SubTotal   decimal.Decimal `json:"subTotal"`
	Tax        decimal.Decimal `json:"tax"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Validate checks the request before it is handed to the service.
func (r *CreateInvoiceRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"subTotal", r.SubTotal},
		{"tax", r.Tax},
		{"totalPrice", r.TotalPrice},
	}
	for _, a := range amounts {
		switch {
		case a.value.IsNegative():
			return domain.NewValidationError(a.field, "must not be negative", domain.ErrValidation)
		case !a.value.Equal(a.value.Round(amountScale)):
			return domain.NewValidationError(a.field, fmt.Sprintf("must have at most %d decimal places", amountScale), domain.ErrValidation)
		case a.value.GreaterThanOrEqual(amountLimit):
			return domain.NewValidationError(a.field, "must be less than "+amountLimit.String(), domain.ErrValidation)
		}
	}

	return nil
}

// UpdateInvoiceRequest represents the request payload for changing the payment
// state of an invoice. Both fields are overwritten.
type UpdateInvoiceRequest struct {
	PaymentStatus domain.PaymentStatus `json:"paymentStatus" validate:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" validate:"required"`
}

// Validate checks that both payment fields are present and known values.
func (r *UpdateInvoiceRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := r.PaymentStatus.Validate(); err != nil {
		return domain.NewValidationError("paymentStatus", err.Error(), domain.ErrValidation)
	}
	if err := r.PaymentMethod.Validate(); err != nil {
		return domain.NewValidationError("paymentMethod", err.Error(), domain.ErrValidation)
	}
	return nil
}
