package service

import "fmt"

// Error handling principles:
//  1. A missing user, product, or invoice is reported as *domain.NotFoundError.
//  2. Every other failure is wrapped in an InvoiceServiceError naming the operation.
//  3. Callers use errors.Is/errors.As to reach the underlying cause.

// InvoiceServiceError is a custom error type for invoice service errors.
type InvoiceServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for InvoiceServiceError.
func (e *InvoiceServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invoice service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("invoice service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *InvoiceServiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceServiceError creates a new InvoiceServiceError.
func NewInvoiceServiceError(operation, message string, err error) *InvoiceServiceError {
	return &InvoiceServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
