package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
)

// ProductStore defines the read access the invoice layer needs to products.
type ProductStore interface {
	// GetByID retrieves a product by its unique ID, with its Category populated
	// when the product has one.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// WithTx returns a new ProductStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProductStore
}
