package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/config"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/phrazzld/digitalshop-api/internal/dto"
	"github.com/phrazzld/digitalshop-api/internal/platform/logger"
	"github.com/phrazzld/digitalshop-api/internal/redact"
	"github.com/phrazzld/digitalshop-api/internal/store"
)

// Transactor runs fn inside one database transaction.
// store.SQLTransactor is the production implementation.
type Transactor interface {
	RunInTx(ctx context.Context, fn store.TxFn) error
}

// InvoiceService provides invoice-related operations
type InvoiceService interface {
	// CreateInvoice resolves the user and every product, then records a new
	// pending invoice with the caller-supplied totals.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)

	// UpdateInvoice overwrites the payment status and payment method of an invoice.
	UpdateInvoice(ctx context.Context, invoiceID uuid.UUID, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)

	// DeleteInvoice removes an invoice and its product associations.
	DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error

	// GetInvoice retrieves a single invoice.
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error)

	// ListInvoicesByUser returns one page of the invoices owned by userID.
	// An unknown user yields an empty page, not an error.
	ListInvoicesByUser(ctx context.Context, userID uuid.UUID, page, size int) (*store.Page[dto.InvoiceResponse], error)

	// ListInvoices returns one page of all invoices.
	ListInvoices(ctx context.Context, page, size int) (*store.Page[dto.InvoiceResponse], error)
}

// txStores groups the stores bound to one transaction.
type txStores struct {
	users    store.UserStore
	products store.ProductStore
	invoices store.InvoiceStore
}

// invoiceServiceImpl implements the InvoiceService interface
type invoiceServiceImpl struct {
	users      store.UserStore
	products   store.ProductStore
	invoices   store.InvoiceStore
	transactor Transactor
	pagination config.PaginationConfig
	logger     *slog.Logger
}

// NewInvoiceService creates a new InvoiceService.
// It returns an error if any of the stores is nil. A nil transactor makes
// mutating operations call the stores directly. Zero pagination values fall
// back to config.DefaultPageSize and config.DefaultMaxPageSize.
func NewInvoiceService(
	users store.UserStore,
	products store.ProductStore,
	invoices store.InvoiceStore,
	transactor Transactor,
	pagination config.PaginationConfig,
	logger *slog.Logger,
) (InvoiceService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}
	if invoices == nil {
		return nil, domain.NewValidationError("invoices", "cannot be nil", domain.ErrValidation)
	}

	if pagination.MaxPageSize < 1 {
		pagination.MaxPageSize = config.DefaultMaxPageSize
	}
	if pagination.DefaultPageSize < 1 {
		pagination.DefaultPageSize = min(config.DefaultPageSize, pagination.MaxPageSize)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &invoiceServiceImpl{
		users:      users,
		products:   products,
		invoices:   invoices,
		transactor: transactor,
		pagination: pagination,
		logger:     logger.With(slog.String("component", "invoice_service")),
	}, nil
}

// inTx runs fn with transaction-bound stores, or with the plain stores when
// no transactor is configured.
func (s *invoiceServiceImpl) inTx(ctx context.Context, fn func(ctx context.Context, st txStores) error) error {
	if s.transactor == nil {
		return fn(ctx, txStores{users: s.users, products: s.products, invoices: s.invoices})
	}

	return s.transactor.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, txStores{
			users:    s.users.WithTx(tx),
			products: s.products.WithTx(tx),
			invoices: s.invoices.WithTx(tx),
		})
	})
}

// lookupFailed converts a store lookup error into the service error contract:
// not-found becomes a domain.NotFoundError, anything else is wrapped.
func lookupFailed(
	log *slog.Logger,
	operation string,
	entity domain.Entity,
	id uuid.UUID,
	err error,
) error {
	if store.IsNotFoundError(err) {
		log.Warn("referenced entity not found",
			slog.String("entity", string(entity)),
			slog.String("id", id.String()))
		return domain.NewNotFoundError(entity, id)
	}

	log.Error("failed to load entity",
		slog.String("entity", string(entity)),
		slog.String("id", id.String()),
		slog.String("error", redact.Error(err)))
	return NewInvoiceServiceError(operation, "failed to load "+string(entity), err)
}

// CreateInvoice implements InvoiceService.CreateInvoice.
// The user is resolved first, then each product in request order; the first
// missing reference aborts the operation and nothing is persisted.
func (s *invoiceServiceImpl) CreateInvoice(
	ctx context.Context,
	req dto.CreateInvoiceRequest,
) (*dto.InvoiceResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("creating invoice",
		slog.String("user_id", req.UserID.String()),
		slog.Int("product_count", len(req.ProductIDs)))

	var created *domain.Invoice
	err := s.inTx(ctx, func(ctx context.Context, st txStores) error {
		user, err := st.users.GetByID(ctx, req.UserID)
		if err != nil {
			return lookupFailed(log, "create_invoice", domain.EntityUser, req.UserID, err)
		}

		products := make([]*domain.Product, 0, len(req.ProductIDs))
		for _, productID := range req.ProductIDs {
			product, err := st.products.GetByID(ctx, productID)
			if err != nil {
				return lookupFailed(log, "create_invoice", domain.EntityProduct, productID, err)
			}
			products = append(products, product)
		}

		invoice, err := domain.NewInvoice(user, products, req.SubTotal, req.Tax, req.TotalPrice)
		if err != nil {
			log.Warn("invalid invoice", slog.String("error", err.Error()))
			return NewInvoiceServiceError("create_invoice", "invalid invoice", err)
		}

		if err := st.invoices.Create(ctx, invoice); err != nil {
			if store.IsDuplicateError(err) {
				log.Warn("invoice id already taken",
					slog.String("invoice_id", invoice.ID.String()))
				return NewInvoiceServiceError("create_invoice", "invoice already exists", err)
			}
			log.Error("failed to save invoice",
				slog.String("invoice_id", invoice.ID.String()),
				slog.String("error", redact.Error(err)))
			return NewInvoiceServiceError("create_invoice", "failed to save invoice", err)
		}

		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("invoice created",
		slog.String("invoice_id", created.ID.String()),
		slog.String("user_id", req.UserID.String()))

	return dto.NewInvoiceResponse(created), nil
}

// UpdateInvoice implements InvoiceService.UpdateInvoice.
// Only the payment status and payment method are changed.
func (s *invoiceServiceImpl) UpdateInvoice(
	ctx context.Context,
	invoiceID uuid.UUID,
	req dto.UpdateInvoiceRequest,
) (*dto.InvoiceResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("updating invoice payment",
		slog.String("invoice_id", invoiceID.String()),
		slog.String("payment_status", req.PaymentStatus.String()),
		slog.String("payment_method", req.PaymentMethod.String()))

	var updated *domain.Invoice
	err := s.inTx(ctx, func(ctx context.Context, st txStores) error {
		invoice, err := st.invoices.GetByID(ctx, invoiceID)
		if err != nil {
			return lookupFailed(log, "update_invoice", domain.EntityInvoice, invoiceID, err)
		}

		if err := invoice.UpdatePayment(req.PaymentStatus, req.PaymentMethod); err != nil {
			log.Warn("invalid payment update", slog.String("error", err.Error()))
			return NewInvoiceServiceError("update_invoice", "invalid payment update", err)
		}

		if err := st.invoices.Update(ctx, invoice); err != nil {
			if store.IsNotFoundError(err) {
				return lookupFailed(log, "update_invoice", domain.EntityInvoice, invoiceID, err)
			}
			log.Error("failed to save invoice",
				slog.String("invoice_id", invoiceID.String()),
				slog.String("error", redact.Error(err)))
			return NewInvoiceServiceError("update_invoice", "failed to save invoice", err)
		}

		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("invoice payment updated",
		slog.String("invoice_id", invoiceID.String()),
		slog.String("payment_status", updated.PaymentStatus.String()))

	return dto.NewInvoiceResponse(updated), nil
}

// DeleteInvoice implements InvoiceService.DeleteInvoice.
func (s *invoiceServiceImpl) DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("deleting invoice", slog.String("invoice_id", invoiceID.String()))

	err := s.inTx(ctx, func(ctx context.Context, st txStores) error {
		exists, err := st.invoices.ExistsByID(ctx, invoiceID)
		if err != nil {
			log.Error("failed to check invoice existence",
				slog.String("invoice_id", invoiceID.String()),
				slog.String("error", redact.Error(err)))
			return NewInvoiceServiceError("delete_invoice", "failed to check invoice", err)
		}
		if !exists {
			log.Warn("referenced entity not found",
				slog.String("entity", string(domain.EntityInvoice)),
				slog.String("id", invoiceID.String()))
			return domain.NewNotFoundError(domain.EntityInvoice, invoiceID)
		}

		if err := st.invoices.Delete(ctx, invoiceID); err != nil {
			if store.IsNotFoundError(err) {
				return lookupFailed(log, "delete_invoice", domain.EntityInvoice, invoiceID, err)
			}
			log.Error("failed to delete invoice",
				slog.String("invoice_id", invoiceID.String()),
				slog.String("error", redact.Error(err)))
			return NewInvoiceServiceError("delete_invoice", "failed to delete invoice", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("invoice deleted", slog.String("invoice_id", invoiceID.String()))
	return nil
}

// GetInvoice implements InvoiceService.GetInvoice.
func (s *invoiceServiceImpl) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving invoice", slog.String("invoice_id", invoiceID.String()))

	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, lookupFailed(log, "get_invoice", domain.EntityInvoice, invoiceID, err)
	}

	return dto.NewInvoiceResponse(invoice), nil
}

// ListInvoicesByUser implements InvoiceService.ListInvoicesByUser.
func (s *invoiceServiceImpl) ListInvoicesByUser(
	ctx context.Context,
	userID uuid.UUID,
	page, size int,
) (*store.Page[dto.InvoiceResponse], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	req := s.pageRequest(page, size)

	log.Debug("listing invoices for user",
		slog.String("user_id", userID.String()),
		slog.Int("page", req.Number),
		slog.Int("size", req.Size))

	result, err := s.invoices.ListByUserID(ctx, userID, req)
	if err != nil {
		log.Error("failed to list invoices for user",
			slog.String("user_id", userID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewInvoiceServiceError("list_invoices_by_user", "failed to list invoices", err)
	}

	return projectPage(result), nil
}

// ListInvoices implements InvoiceService.ListInvoices.
func (s *invoiceServiceImpl) ListInvoices(ctx context.Context, page, size int) (*store.Page[dto.InvoiceResponse], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	req := s.pageRequest(page, size)

	log.Debug("listing invoices",
		slog.Int("page", req.Number),
		slog.Int("size", req.Size))

	result, err := s.invoices.List(ctx, req)
	if err != nil {
		log.Error("failed to list invoices", slog.String("error", redact.Error(err)))
		return nil, NewInvoiceServiceError("list_invoices", "failed to list invoices", err)
	}

	return projectPage(result), nil
}

// pageRequest clamps caller paging input: a negative page becomes 0, a
// non-positive size becomes the default, and sizes above the maximum are capped.
func (s *invoiceServiceImpl) pageRequest(page, size int) store.PageRequest {
	if page < 0 {
		page = 0
	}
	switch {
	case size < 1:
		size = s.pagination.DefaultPageSize
	case size > s.pagination.MaxPageSize:
		size = s.pagination.MaxPageSize
	}
	return store.PageRequest{Number: page, Size: size}
}

func projectPage(p *store.Page[*domain.Invoice]) *store.Page[dto.InvoiceResponse] {
	return store.MapPage(p, func(inv *domain.Invoice) dto.InvoiceResponse {
		return *dto.NewInvoiceResponse(inv)
	})
}
