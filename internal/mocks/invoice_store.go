package mocks

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/phrazzld/digitalshop-api/internal/store"
	"github.com/samber/lo"
)

// MockInvoiceStore implements store.InvoiceStore for testing.
// The default implementation keeps copies of invoices in memory and pages
// them in the same order as the postgres store (created_at, then id).
type MockInvoiceStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, invoice *domain.Invoice) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	ExistsByIDFn   func(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateFn       func(ctx context.Context, invoice *domain.Invoice) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
	ListFn         func(ctx context.Context, page store.PageRequest) (*store.Page[*domain.Invoice], error)
	ListByUserIDFn func(ctx context.Context, userID uuid.UUID, page store.PageRequest) (*store.Page[*domain.Invoice], error)

	// Data for default implementation
	Invoices map[uuid.UUID]*domain.Invoice
}

var _ store.InvoiceStore = (*MockInvoiceStore)(nil)

// NewMockInvoiceStore creates a new mock store seeded with invoices
func NewMockInvoiceStore(invoices ...*domain.Invoice) *MockInvoiceStore {
	m := &MockInvoiceStore{Invoices: make(map[uuid.UUID]*domain.Invoice)}
	for _, inv := range invoices {
		m.Invoices[inv.ID] = cloneInvoice(inv)
	}
	return m
}

func cloneInvoice(inv *domain.Invoice) *domain.Invoice {
	c := *inv
	c.Products = slices.Clone(inv.Products)
	return &c
}

// Create implements the InvoiceStore interface
func (m *MockInvoiceStore) Create(ctx context.Context, invoice *domain.Invoice) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, invoice)
	}

	if err := invoice.Validate(); err != nil {
		return err
	}
	if _, exists := m.Invoices[invoice.ID]; exists {
		return store.ErrDuplicate
	}

	m.Invoices[invoice.ID] = cloneInvoice(invoice)
	return nil
}

// GetByID implements the InvoiceStore interface
func (m *MockInvoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	inv, ok := m.Invoices[id]
	if !ok {
		return nil, store.ErrInvoiceNotFound
	}
	return cloneInvoice(inv), nil
}

// ExistsByID implements the InvoiceStore interface
func (m *MockInvoiceStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsByIDFn != nil {
		return m.ExistsByIDFn(ctx, id)
	}

	_, ok := m.Invoices[id]
	return ok, nil
}

// Update implements the InvoiceStore interface
func (m *MockInvoiceStore) Update(ctx context.Context, invoice *domain.Invoice) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, invoice)
	}

	existing, ok := m.Invoices[invoice.ID]
	if !ok {
		return store.ErrInvoiceNotFound
	}

	// Only the mutable columns are written, as in the postgres store.
	updated := cloneInvoice(existing)
	updated.PaymentStatus = invoice.PaymentStatus
	updated.PaymentMethod = invoice.PaymentMethod
	updated.UpdatedAt = invoice.UpdatedAt
	m.Invoices[invoice.ID] = updated
	return nil
}

// Delete implements the InvoiceStore interface
func (m *MockInvoiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.Invoices[id]; !ok {
		return store.ErrInvoiceNotFound
	}
	delete(m.Invoices, id)
	return nil
}

// List implements the InvoiceStore interface
func (m *MockInvoiceStore) List(ctx context.Context, page store.PageRequest) (*store.Page[*domain.Invoice], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return m.page(lo.Values(m.Invoices), page), nil
}

// ListByUserID implements the InvoiceStore interface
func (m *MockInvoiceStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
	page store.PageRequest,
) (*store.Page[*domain.Invoice], error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID, page)
	}

	owned := lo.Filter(lo.Values(m.Invoices), func(inv *domain.Invoice, _ int) bool {
		return inv.UserID() == userID
	})
	return m.page(owned, page), nil
}

// WithTx returns the same store.
func (m *MockInvoiceStore) WithTx(tx *sql.Tx) store.InvoiceStore {
	return m
}

// Count returns the number of stored invoices.
func (m *MockInvoiceStore) Count() int {
	return len(m.Invoices)
}

func (m *MockInvoiceStore) page(all []*domain.Invoice, req store.PageRequest) *store.Page[*domain.Invoice] {
	slices.SortFunc(all, func(a, b *domain.Invoice) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	total := int64(len(all))
	start := min(req.Offset(), len(all))
	end := min(start+req.Size, len(all))

	content := lo.Map(all[start:end], func(inv *domain.Invoice, _ int) *domain.Invoice {
		return cloneInvoice(inv)
	})
	return store.NewPage(content, req, total)
}
