package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/config"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/phrazzld/digitalshop-api/internal/dto"
	"github.com/phrazzld/digitalshop-api/internal/mocks"
	"github.com/phrazzld/digitalshop-api/internal/platform/logger"
	"github.com/phrazzld/digitalshop-api/internal/service"
	"github.com/phrazzld/digitalshop-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliFixture struct {
	user     *domain.User
	products []*domain.Product
	invoices *mocks.MockInvoiceStore
	svc      service.InvoiceService
	opened   int
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()

	f := &cliFixture{
		user: &domain.User{ID: uuid.New(), Username: "ops", Email: "ops@example.com"},
		products: []*domain.Product{
			{ID: uuid.New(), Name: "E-book", Price: decimal.NewFromInt(4)},
			{ID: uuid.New(), Name: "Audiobook", Price: decimal.NewFromInt(6)},
		},
		invoices: mocks.NewMockInvoiceStore(),
	}

	svc, err := service.NewInvoiceService(
		mocks.NewMockUserStore(f.user),
		mocks.NewMockProductStore(f.products...),
		f.invoices,
		&mocks.MockTransactor{},
		config.PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100},
		nil,
	)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *cliFixture) open(_ context.Context, _ string, logOut io.Writer) (*application, error) {
	f.opened++
	return &application{
		logger:         logger.New(config.LogConfig{Level: "error"}, logOut),
		invoiceService: f.svc,
	}, nil
}

// run executes invoicectl with args and returns what it wrote to stdout.
func (f *cliFixture) run(args ...string) (string, error) {
	cmd := newRootCmd(f.open)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (f *cliFixture) create(t *testing.T) dto.InvoiceResponse {
	t.Helper()
	out, err := f.run("invoice", "create",
		"--user", f.user.ID.String(),
		"--product", f.products[0].ID.String(),
		"--product", f.products[1].ID.String(),
		"--sub-total", "10", "--tax", "1", "--total", "11")
	require.NoError(t, err)

	var resp dto.InvoiceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func TestInvoiceCreateAndGet(t *testing.T) {
	f := newCLIFixture(t)

	created := f.create(t)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, f.user.ID, created.User.ID)
	require.Len(t, created.Products, 2)
	assert.Equal(t, f.products[0].ID, created.Products[0].ID)
	assert.Equal(t, f.products[1].ID, created.Products[1].ID)
	assert.True(t, decimal.NewFromInt(11).Equal(created.TotalPrice))
	assert.Equal(t, domain.PaymentStatusPending, created.PaymentStatus)
	assert.Nil(t, created.PaymentMethod)

	out, err := f.run("invoice", "get", created.ID.String())
	require.NoError(t, err)

	var got dto.InvoiceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 1, f.invoices.Count())
}

func TestInvoiceCreate_RejectsBadInputBeforeOpening(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad user id", []string{"--user", "nope", "--product", uuid.NewString(), "--sub-total", "1", "--total", "1"}},
		{"bad product id", []string{"--user", uuid.NewString(), "--product", "nope", "--sub-total", "1", "--total", "1"}},
		{"bad amount", []string{"--user", uuid.NewString(), "--product", uuid.NewString(), "--sub-total", "ten", "--total", "1"}},
		{"negative tax", []string{"--user", uuid.NewString(), "--product", uuid.NewString(), "--sub-total", "1", "--tax=-1", "--total", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCLIFixture(t)

			_, err := f.run(append([]string{"invoice", "create"}, tt.args...)...)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, f.opened)
		})
	}
}

func TestInvoiceCreate_RequiresFlags(t *testing.T) {
	f := newCLIFixture(t)

	_, err := f.run("invoice", "create", "--user", f.user.ID.String())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
	assert.Zero(t, f.opened)
}

func TestInvoiceCreate_UnknownProduct(t *testing.T) {
	f := newCLIFixture(t)

	_, err := f.run("invoice", "create",
		"--user", f.user.ID.String(),
		"--product", uuid.NewString(),
		"--sub-total", "1", "--total", "1")

	assert.True(t, domain.IsNotFound(err, domain.EntityProduct))
	assert.Zero(t, f.invoices.Count())
}

func TestInvoiceUpdate(t *testing.T) {
	f := newCLIFixture(t)
	created := f.create(t)

	out, err := f.run("invoice", "update", created.ID.String(), "--status", "paid", "--method", "paypal")
	require.NoError(t, err)

	var updated dto.InvoiceResponse
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
	require.NotNil(t, updated.PaymentMethod)
	assert.Equal(t, domain.PaymentMethodPayPal, *updated.PaymentMethod)
	assert.True(t, created.TotalPrice.Equal(updated.TotalPrice))
	assert.Len(t, updated.Products, 2)
}

func TestInvoiceUpdate_InvalidStatus(t *testing.T) {
	f := newCLIFixture(t)

	_, err := f.run("invoice", "update", uuid.NewString(), "--status", "lost", "--method", "paypal")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "paymentStatus")
	assert.Zero(t, f.opened)
}

func TestInvoiceDelete(t *testing.T) {
	f := newCLIFixture(t)
	created := f.create(t)

	out, err := f.run("invoice", "delete", created.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")
	assert.Zero(t, f.invoices.Count())

	_, err = f.run("invoice", "delete", created.ID.String())
	assert.True(t, domain.IsNotFound(err, domain.EntityInvoice))
}

func TestInvoiceList(t *testing.T) {
	f := newCLIFixture(t)
	for i := 0; i < 3; i++ {
		f.create(t)
	}

	t.Run("all invoices", func(t *testing.T) {
		out, err := f.run("invoice", "list", "--page", "1", "--size", "2")
		require.NoError(t, err)

		var page store.Page[dto.InvoiceResponse]
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		assert.Equal(t, int64(3), page.TotalElements)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 1, page.Number)
		assert.Len(t, page.Content, 1)
	})

	t.Run("unknown user yields an empty page", func(t *testing.T) {
		out, err := f.run("invoice", "list", "--user", uuid.NewString())
		require.NoError(t, err)

		var page store.Page[dto.InvoiceResponse]
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		assert.Empty(t, page.Content)
		assert.Equal(t, 10, page.Size)
		assert.Contains(t, out, `"content": []`)
	})

	t.Run("nil user id matches no invoices", func(t *testing.T) {
		out, err := f.run("invoice", "list", "--user", uuid.Nil.String())
		require.NoError(t, err)

		var page store.Page[dto.InvoiceResponse]
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		assert.Empty(t, page.Content)
		assert.Zero(t, page.TotalElements)
	})

	t.Run("owner", func(t *testing.T) {
		out, err := f.run("invoice", "list", "--user", f.user.ID.String(), "--size", "500")
		require.NoError(t, err)

		var page store.Page[dto.InvoiceResponse]
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		assert.Len(t, page.Content, 3)
		assert.Equal(t, 100, page.Size)
	})
}

func TestMigrateCmd(t *testing.T) {
	t.Run("rejects unknown command", func(t *testing.T) {
		f := newCLIFixture(t)
		_, err := f.run("migrate", "sideways")
		assert.Error(t, err)
		assert.Zero(t, f.opened)
	})

	t.Run("requires a database", func(t *testing.T) {
		f := newCLIFixture(t)
		_, err := f.run("migrate", "status")
		assert.ErrorIs(t, err, errNoDatabase)
	})
}

func TestOpenerErrorIsReturned(t *testing.T) {
	openErr := errors.New("failed to load configuration")
	cmd := newRootCmd(func(context.Context, string, io.Writer) (*application, error) {
		return nil, openErr
	})
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"invoice", "get", uuid.NewString()})

	assert.ErrorIs(t, cmd.Execute(), openErr)
}

func TestConfigFlagReachesOpener(t *testing.T) {
	var gotPath string
	cmd := newRootCmd(func(_ context.Context, configPath string, _ io.Writer) (*application, error) {
		gotPath = configPath
		return nil, errors.New("stop")
	})
	cmd.SetArgs([]string{"--config", "/etc/shop/config.yaml", "invoice", "list"})

	require.Error(t, cmd.Execute())
	assert.Equal(t, "/etc/shop/config.yaml", gotPath)
}
