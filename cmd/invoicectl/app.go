package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/digitalshop-api/internal/config"
	"github.com/phrazzld/digitalshop-api/internal/platform/logger"
	"github.com/phrazzld/digitalshop-api/internal/platform/postgres"
	"github.com/phrazzld/digitalshop-api/internal/service"
	"github.com/phrazzld/digitalshop-api/internal/store"
)

// pingTimeout bounds the initial database health check.
const pingTimeout = 5 * time.Second

// application holds the dependencies shared by every command and owns
// their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	invoiceService service.InvoiceService
}

// appOpener builds the application for one command invocation. Logs are
// written to logOut so that command output on stdout stays machine-readable.
type appOpener func(ctx context.Context, configPath string, logOut io.Writer) (*application, error)

// openApplication loads configuration, sets up logging, connects to the
// database and wires the stores into the invoice service.
func openApplication(ctx context.Context, configPath string, logOut io.Writer) (*application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Log, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	invoiceService, err := service.NewInvoiceService(
		postgres.NewPostgresUserStore(db, log),
		postgres.NewPostgresProductStore(db, log),
		postgres.NewPostgresInvoiceStore(db, log),
		store.NewSQLTransactor(db),
		cfg.Pagination,
		log,
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create invoice service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         log,
		db:             db,
		invoiceService: invoiceService,
	}, nil
}

// setupDatabase opens the connection pool described by cfg and verifies it.
func setupDatabase(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Debug("database connection established",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns))
	return db, nil
}

// Close releases the database connection pool.
func (a *application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
