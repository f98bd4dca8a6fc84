package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
)

// InvoiceStore defines the interface for invoice data persistence.
// Invoices are returned fully hydrated: User and Products (with their
// categories) are populated, and Products keep the order they were saved in.
type InvoiceStore interface {
	// Create saves a new invoice and its product associations.
	// IMPORTANT: the invoice row and its association rows are written with
	// separate statements, so this method MUST be run within a transaction
	// (see RunInTransaction and WithTx) to be atomic.
	//
	// Returns validation errors from the domain Invoice if data is invalid.
	// Returns ErrInvalidEntity if the user or a product does not exist.
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by its unique ID.
	// Returns ErrInvoiceNotFound if the invoice does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	// ExistsByID reports whether an invoice with the given ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Update saves the mutable fields of an existing invoice (payment status,
	// payment method, and the update timestamp).
	// Returns ErrInvoiceNotFound if the invoice does not exist.
	Update(ctx context.Context, invoice *domain.Invoice) error

	// Delete removes an invoice and its product associations.
	// Returns ErrInvoiceNotFound if the invoice does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of all invoices in a stable order
	// (creation time, then ID).
	List(ctx context.Context, page PageRequest) (*Page[*domain.Invoice], error)

	// ListByUserID returns one page of the invoices owned by userID, in the
	// same order as List. An unknown user yields an empty page.
	ListByUserID(ctx context.Context, userID uuid.UUID, page PageRequest) (*Page[*domain.Invoice], error)

	// WithTx returns a new InvoiceStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) InvoiceStore
}
