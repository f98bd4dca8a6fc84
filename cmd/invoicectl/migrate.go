package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/digitalshop-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("migrations require a database connection")

func newMigrateCmd(opts *rootOptions, open appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate {up|down|reset|status|version}",
		Short: "Apply or inspect database schema migrations",
		Long:  "Run a goose migration command using the migrations embedded in the binary.",
		ValidArgs: []string{
			postgres.MigrateUp,
			postgres.MigrateDown,
			postgres.MigrateReset,
			postgres.MigrateStatus,
			postgres.MigrateVersion,
		},
		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := args[0]
			return runWithApp(cmd, opts, open, func(ctx context.Context, app *application) error {
				if app.db == nil {
					return errNoDatabase
				}

				if err := postgres.Migrate(ctx, app.db, command, app.logger); err != nil {
					return err
				}

				version, err := postgres.CurrentVersion(ctx, app.db)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "migrate %s complete, schema version %d\n", command, version)
				return nil
			})
		},
	}
}
