package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/phrazzld/digitalshop-api/internal/dto"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newInvoiceCmd(opts *rootOptions, open appOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create, update, delete and list invoices",
	}

	cmd.AddCommand(newInvoiceCreateCmd(opts, open))
	cmd.AddCommand(newInvoiceUpdateCmd(opts, open))
	cmd.AddCommand(newInvoiceDeleteCmd(opts, open))
	cmd.AddCommand(newInvoiceGetCmd(opts, open))
	cmd.AddCommand(newInvoiceListCmd(opts, open))
	return cmd
}

func newInvoiceCreateCmd(opts *rootOptions, open appOpener) *cobra.Command {
	var (
		userID     string
		productIDs []string
		subTotal   string
		tax        string
		totalPrice string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a new pending invoice",
		Long: "Record a new pending invoice for a user. Products are kept in the order given " +
			"and may repeat. The amounts are stored as given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dto.CreateInvoiceRequest{}

			var err error
			if req.UserID, err = parseID("user", userID); err != nil {
				return err
			}
			for _, raw := range productIDs {
				id, err := parseID("product", raw)
				if err != nil {
					return err
				}
				req.ProductIDs = append(req.ProductIDs, id)
			}
			if req.SubTotal, err = parseAmount("sub-total", subTotal); err != nil {
				return err
			}
			if req.Tax, err = parseAmount("tax", tax); err != nil {
				return err
			}
			if req.TotalPrice, err = parseAmount("total", totalPrice); err != nil {
				return err
			}

			if err := req.Validate(); err != nil {
				return err
			}

			return runWithApp(cmd, opts, open, func(ctx context.Context, app *application) error {
				invoice, err := app.invoiceService.CreateInvoice(ctx, req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), invoice)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "ID of the purchasing user")
	cmd.Flags().StringSliceVar(&productIDs, "product", nil, "Product ID (repeat or comma-separate for several)")
	cmd.Flags().StringVar(&subTotal, "sub-total", "", "Invoice subtotal")
	cmd.Flags().StringVar(&tax, "tax", "0", "Invoice tax")
	cmd.Flags().StringVar(&totalPrice, "total", "", "Invoice total price")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("sub-total")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func newInvoiceUpdateCmd(opts *rootOptions, open appOpener) *cobra.Command {
	var status, method string

	cmd := &cobra.Command{
		Use:   "update <invoice-id>",
		Short: "Set the payment status and method of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}

			req := dto.UpdateInvoiceRequest{
				PaymentStatus: domain.PaymentStatus(strings.ToUpper(status)),
				PaymentMethod: domain.PaymentMethod(strings.ToUpper(method)),
			}
			if err := req.Validate(); err != nil {
				return err
			}

			return runWithApp(cmd, opts, open, func(ctx context.Context, app *application) error {
				invoice, err := app.invoiceService.UpdateInvoice(ctx, id, req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), invoice)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Payment status: "+
		strings.Join(lo.Map(domain.PaymentStatuses, func(s domain.PaymentStatus, _ int) string { return s.String() }), ", "))
	cmd.Flags().StringVar(&method, "method", "", "Payment method: "+
		strings.Join(lo.Map(domain.PaymentMethods, func(m domain.PaymentMethod, _ int) string { return m.String() }), ", "))
	_ = cmd.MarkFlagRequired("status")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func newInvoiceDeleteCmd(opts *rootOptions, open appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <invoice-id>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}

			return runWithApp(cmd, opts, open, func(ctx context.Context, app *application) error {
				if err := app.invoiceService.DeleteInvoice(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "invoice %s deleted\n", id)
				return nil
			})
		},
	}
}

func newInvoiceGetCmd(opts *rootOptions, open appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "get <invoice-id>",
		Short: "Show one invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice", args[0])
			if err != nil {
				return err
			}

			return runWithApp(cmd, opts, open, func(ctx context.Context, app *application) error {
				invoice, err := app.invoiceService.GetInvoice(ctx, id)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), invoice)
			})
		},
	}
}

func newInvoiceListCmd(opts *rootOptions, open appOpener) *cobra.Command {
	var (
		userID string
		page   int
		size   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices one page at a time",
		Long: "List all invoices, or those of one user with --user, oldest first. " +
			"Out-of-range page numbers and sizes are normalised rather than rejected.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var owner uuid.UUID
			if userID != "" {
				id, err := parseID("user", userID)
				if err != nil {
					return err
				}
				owner = id
			}

			return runWithApp(cmd, opts, open, func(ctx context.Context, app *application) error {
				if userID == "" {
					result, err := app.invoiceService.ListInvoices(ctx, page, size)
					if err != nil {
						return err
					}
					return writeJSON(cmd.OutOrStdout(), result)
				}

				result, err := app.invoiceService.ListInvoicesByUser(ctx, owner, page, size)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Only list invoices of this user")
	cmd.Flags().IntVar(&page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&size, "size", 0, "Page size (0 uses the configured default)")

	return cmd
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, fmt.Sprintf("id %q is not a valid UUID", raw), domain.ErrValidation)
	}
	return id, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, fmt.Sprintf("amount %q is not a decimal number", raw), domain.ErrValidation)
	}
	return amount, nil
}
