package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/phrazzld/digitalshop-api/internal/platform/logger"
	"github.com/phrazzld/digitalshop-api/internal/redact"
	"github.com/phrazzld/digitalshop-api/internal/store"
)

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the ProductStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// GetByID implements store.ProductStore.GetByID
// The product's category is loaded with the same query.
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving product by ID", slog.String("product_id", id.String()))

	query := `
		SELECT p.id, p.name, p.description, p.price, p.image_url, p.created_at, p.updated_at,
		       c.id, c.name, c.slug, c.description
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	var product domain.Product
	var category nullCategory
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.String("product_id", id.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", redact.Error(err)),
			slog.String("product_id", id.String()))
		return nil, store.NewStoreError("product", "get_by_id", "query failed", MapError(err))
	}

	product.Category = category.toDomain()
	return &product, nil
}

// WithTx implements store.ProductStore.WithTx
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullCategory receives category columns from a LEFT JOIN.
type nullCategory struct {
	ID          uuid.NullUUID
	Name        sql.NullString
	Slug        sql.NullString
	Description sql.NullString
}

func (c nullCategory) toDomain() *domain.Category {
	if !c.ID.Valid {
		return nil
	}
	return &domain.Category{
		ID:          c.ID.UUID,
		Name:        c.Name.String,
		Slug:        c.Slug.String,
		Description: c.Description.String,
	}
}
