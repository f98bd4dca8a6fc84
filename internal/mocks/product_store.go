package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/phrazzld/digitalshop-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing
type MockProductStore struct {
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	Products map[uuid.UUID]*domain.Product
	// Lookups records every id passed to GetByID, in call order.
	Lookups []uuid.UUID
}

var _ store.ProductStore = (*MockProductStore)(nil)

// NewMockProductStore creates a new mock store seeded with products
func NewMockProductStore(products ...*domain.Product) *MockProductStore {
	m := &MockProductStore{Products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		m.Products[p.ID] = p
	}
	return m
}

// GetByID implements the ProductStore interface
func (m *MockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.Lookups = append(m.Lookups, id)
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	product, ok := m.Products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return product, nil
}

// WithTx returns the same store.
func (m *MockProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return m
}
