package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/phrazzld/digitalshop-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd(open appOpener) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Manage digital shop invoices",
		Long:          "invoicectl applies database migrations and creates, updates, deletes and lists invoices.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to a YAML config file (default ./config.yaml when present)")

	cmd.AddCommand(newMigrateCmd(opts, open))
	cmd.AddCommand(newInvoiceCmd(opts, open))
	return cmd
}

// runWithApp opens the application for cmd, runs fn and closes it again.
// The context passed to fn carries the application logger.
func runWithApp(
	cmd *cobra.Command,
	opts *rootOptions,
	open appOpener,
	fn func(ctx context.Context, app *application) error,
) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := open(ctx, opts.configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			app.logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	return fn(logger.WithLogger(ctx, app.logger), app)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
