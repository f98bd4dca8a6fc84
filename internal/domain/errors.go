package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is matched by every NotFoundError through errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPaymentStatus is returned when a payment status is not one of the known values.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrInvalidPaymentMethod is returned when a payment method is not one of the known values.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Entity names the kind of record a lookup failed to find.
type Entity string

// Entities referenced by the invoice service.
const (
	EntityUser    Entity = "user"
	EntityProduct Entity = "product"
	EntityInvoice Entity = "invoice"
)

// NotFoundError reports that a referenced entity does not exist.
// It is the only error kind raised by the invoice service itself; callers
// translate it into a client-facing response (for example a 404).
type NotFoundError struct {
	Entity Entity
	ID     uuid.UUID
}

// NewNotFoundError creates a NotFoundError for the given entity kind and id.
func NewNotFoundError(entity Entity, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is reports whether target is ErrNotFound, so that any NotFoundError
// can be checked with errors.Is(err, domain.ErrNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err is a NotFoundError for the given entity.
func IsNotFound(err error, entity Entity) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Entity == entity
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field wrapping err.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
