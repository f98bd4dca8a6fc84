package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/phrazzld/digitalshop-api/internal/platform/logger"
	"github.com/phrazzld/digitalshop-api/internal/redact"
	"github.com/phrazzld/digitalshop-api/internal/store"
	"github.com/shopspring/decimal"
)

// invoiceSelect loads invoices from the row source %s (aliased i) together
// with their user, products, and product categories; one row per product line.
const invoiceSelect = `
	SELECT i.id, i.sub_total, i.tax, i.total_price, i.payment_status, i.payment_method,
	       i.created_at, i.updated_at,
	       u.id, u.username, u.email, u.first_name, u.last_name, u.hashed_password,
	       u.created_at, u.updated_at,
	       p.id, p.name, p.description, p.price, p.image_url, p.created_at, p.updated_at,
	       c.id, c.name, c.slug, c.description
	FROM %s i
	JOIN users u ON u.id = i.user_id
	LEFT JOIN invoice_products ip ON ip.invoice_id = i.id
	LEFT JOIN products p ON p.id = ip.product_id
	LEFT JOIN categories c ON c.id = p.category_id
`

// invoiceOrder is the stable order used by every listing.
const invoiceOrder = `ORDER BY i.created_at ASC, i.id ASC, ip.position ASC`

// PostgresInvoiceStore implements the store.InvoiceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresInvoiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresInvoiceStore creates a new PostgreSQL implementation of the InvoiceStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresInvoiceStore(db store.DBTX, logger *slog.Logger) *PostgresInvoiceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInvoiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "invoice_store")),
	}
}

// Ensure PostgresInvoiceStore implements store.InvoiceStore interface
var _ store.InvoiceStore = (*PostgresInvoiceStore)(nil)

// Create implements store.InvoiceStore.Create
// It inserts the invoice row and one invoice_products row per product line.
// Returns validation errors from the domain Invoice if data is invalid.
// Returns store.ErrInvalidEntity if the user or a product does not exist.
func (s *PostgresInvoiceStore) Create(ctx context.Context, invoice *domain.Invoice) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := invoice.Validate(); err != nil {
		log.Warn("invoice validation failed during create",
			slog.String("error", err.Error()),
			slog.String("invoice_id", invoice.ID.String()))
		return err
	}

	query := `
		INSERT INTO invoices (id, user_id, sub_total, tax, total_price, payment_status,
		                      payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		invoice.ID,
		invoice.UserID(),
		invoice.SubTotal,
		invoice.Tax,
		invoice.TotalPrice,
		string(invoice.PaymentStatus),
		nullPaymentMethod(invoice.PaymentMethod),
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("invoice references unknown user",
				slog.String("invoice_id", invoice.ID.String()),
				slog.String("user_id", invoice.UserID().String()))
		} else {
			log.Error("failed to create invoice",
				slog.String("error", redact.Error(err)),
				slog.String("invoice_id", invoice.ID.String()),
				slog.String("user_id", invoice.UserID().String()))
		}
		return store.NewStoreError("invoice", "create", "insert failed", MapError(err))
	}

	lineQuery := `
		INSERT INTO invoice_products (invoice_id, product_id, position)
		VALUES ($1, $2, $3)
	`
	for position, product := range invoice.Products {
		if _, err := s.db.ExecContext(ctx, lineQuery, invoice.ID, product.ID, position); err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("invoice references unknown product",
					slog.String("invoice_id", invoice.ID.String()),
					slog.String("product_id", product.ID.String()))
			} else {
				log.Error("failed to create invoice product line",
					slog.String("error", redact.Error(err)),
					slog.String("invoice_id", invoice.ID.String()),
					slog.String("product_id", product.ID.String()),
					slog.Int("position", position))
			}
			return store.NewStoreError("invoice", "create", "insert product line failed", MapError(err))
		}
	}

	log.Info("invoice created successfully",
		slog.String("invoice_id", invoice.ID.String()),
		slog.String("user_id", invoice.UserID().String()),
		slog.Int("product_count", len(invoice.Products)))
	return nil
}

// GetByID implements store.InvoiceStore.GetByID
// Returns store.ErrInvoiceNotFound if the invoice does not exist.
func (s *PostgresInvoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving invoice by ID", slog.String("invoice_id", id.String()))

	query := fmt.Sprintf(invoiceSelect, "invoices") + `WHERE i.id = $1 ` + invoiceOrder

	invoices, err := s.queryInvoices(ctx, query, id)
	if err != nil {
		log.Error("failed to get invoice by ID",
			slog.String("error", redact.Error(err)),
			slog.String("invoice_id", id.String()))
		return nil, store.NewStoreError("invoice", "get_by_id", "query failed", MapError(err))
	}

	if len(invoices) == 0 {
		log.Debug("invoice not found", slog.String("invoice_id", id.String()))
		return nil, store.ErrInvoiceNotFound
	}

	return invoices[0], nil
}

// ExistsByID implements store.InvoiceStore.ExistsByID
func (s *PostgresInvoiceStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		log.Error("failed to check invoice existence",
			slog.String("error", redact.Error(err)),
			slog.String("invoice_id", id.String()))
		return false, store.NewStoreError("invoice", "exists_by_id", "query failed", MapError(err))
	}

	return exists, nil
}

// Update implements store.InvoiceStore.Update
// Only payment_status, payment_method and updated_at are written.
// Returns store.ErrInvoiceNotFound if the invoice does not exist.
func (s *PostgresInvoiceStore) Update(ctx context.Context, invoice *domain.Invoice) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := invoice.PaymentStatus.Validate(); err != nil {
		return err
	}
	if err := invoice.PaymentMethod.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET payment_status = $1, payment_method = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		string(invoice.PaymentStatus),
		nullPaymentMethod(invoice.PaymentMethod),
		invoice.UpdatedAt,
		invoice.ID,
	)
	if err != nil {
		log.Error("failed to update invoice",
			slog.String("error", redact.Error(err)),
			slog.String("invoice_id", invoice.ID.String()))
		return store.NewStoreError("invoice", "update", "update failed", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", redact.Error(err)),
			slog.String("invoice_id", invoice.ID.String()))
		return store.NewStoreError("invoice", "update", "rows affected unavailable", err)
	}

	if rowsAffected == 0 {
		log.Debug("invoice not found for update", slog.String("invoice_id", invoice.ID.String()))
		return store.ErrInvoiceNotFound
	}

	log.Info("invoice updated successfully",
		slog.String("invoice_id", invoice.ID.String()),
		slog.String("payment_status", invoice.PaymentStatus.String()))
	return nil
}

// Delete implements store.InvoiceStore.Delete
// Product lines are removed by the ON DELETE CASCADE foreign key.
// Returns store.ErrInvoiceNotFound if the invoice does not exist.
func (s *PostgresInvoiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete invoice",
			slog.String("error", redact.Error(err)),
			slog.String("invoice_id", id.String()))
		return store.NewStoreError("invoice", "delete", "delete failed", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("invoice", "delete", "rows affected unavailable", err)
	}

	if rowsAffected == 0 {
		log.Debug("invoice not found for delete", slog.String("invoice_id", id.String()))
		return store.ErrInvoiceNotFound
	}

	log.Info("invoice deleted successfully", slog.String("invoice_id", id.String()))
	return nil
}

// List implements store.InvoiceStore.List
func (s *PostgresInvoiceStore) List(ctx context.Context, page store.PageRequest) (*store.Page[*domain.Invoice], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing invoices",
		slog.Int("page", page.Number),
		slog.Int("size", page.Size))

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&total); err != nil {
		log.Error("failed to count invoices", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("invoice", "list", "count failed", MapError(err))
	}

	source := `(SELECT * FROM invoices ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2)`
	query := fmt.Sprintf(invoiceSelect, source) + invoiceOrder

	invoices, err := s.queryInvoices(ctx, query, page.Size, page.Offset())
	if err != nil {
		log.Error("failed to list invoices", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("invoice", "list", "query failed", MapError(err))
	}

	return store.NewPage(invoices, page, total), nil
}

// ListByUserID implements store.InvoiceStore.ListByUserID
func (s *PostgresInvoiceStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
	page store.PageRequest,
) (*store.Page[*domain.Invoice], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing invoices for user",
		slog.String("user_id", userID.String()),
		slog.Int("page", page.Number),
		slog.Int("size", page.Size))

	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		log.Error("failed to count invoices for user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("invoice", "list_by_user_id", "count failed", MapError(err))
	}

	source := `(SELECT * FROM invoices WHERE user_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3)`
	query := fmt.Sprintf(invoiceSelect, source) + invoiceOrder

	invoices, err := s.queryInvoices(ctx, query, userID, page.Size, page.Offset())
	if err != nil {
		log.Error("failed to list invoices for user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("invoice", "list_by_user_id", "query failed", MapError(err))
	}

	return store.NewPage(invoices, page, total), nil
}

// WithTx implements store.InvoiceStore.WithTx
func (s *PostgresInvoiceStore) WithTx(tx *sql.Tx) store.InvoiceStore {
	return &PostgresInvoiceStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryInvoices runs an invoiceSelect query and folds the per-line rows into
// invoices, keeping row order for both invoices and their products.
func (s *PostgresInvoiceStore) queryInvoices(ctx context.Context, query string, args ...any) ([]*domain.Invoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var invoices []*domain.Invoice
	byID := make(map[uuid.UUID]*domain.Invoice)

	for rows.Next() {
		var (
			inv      domain.Invoice
			user     domain.User
			status   string
			method   sql.NullString
			product  nullProduct
			category nullCategory
		)

		err := rows.Scan(
			&inv.ID,
			&inv.SubTotal,
			&inv.Tax,
			&inv.TotalPrice,
			&status,
			&method,
			&inv.CreatedAt,
			&inv.UpdatedAt,
			&user.ID,
			&user.Username,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.HashedPassword,
			&user.CreatedAt,
			&user.UpdatedAt,
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
			return nil, err
		}

		current, seen := byID[inv.ID]
		if !seen {
			inv.PaymentStatus = domain.PaymentStatus(status)
			inv.PaymentMethod = domain.PaymentMethod(method.String)
			inv.User = &user
			inv.Products = []*domain.Product{}
			current = &inv
			byID[inv.ID] = current
			invoices = append(invoices, current)
		}

		if p := product.toDomain(); p != nil {
			p.Category = category.toDomain()
			current.Products = append(current.Products, p)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	return invoices, nil
}

// nullProduct receives product columns from a LEFT JOIN.
type nullProduct struct {
	ID          uuid.NullUUID
	Name        sql.NullString
	Description sql.NullString
	Price       decimal.NullDecimal
	ImageURL    sql.NullString
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

func (p nullProduct) toDomain() *domain.Product {
	if !p.ID.Valid {
		return nil
	}
	return &domain.Product{
		ID:          p.ID.UUID,
		Name:        p.Name.String,
		Description: p.Description.String,
		Price:       p.Price.Decimal,
		ImageURL:    p.ImageURL.String,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

// nullPaymentMethod stores an unset payment method as NULL.
func nullPaymentMethod(m domain.PaymentMethod) sql.NullString {
	return sql.NullString{String: string(m), Valid: m.IsSet()}
}
