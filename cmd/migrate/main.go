package main

// Run database migrations:
//   go run ./cmd/migrate up

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goal-detector/internal/bootstrap"
	"goal-detector/internal/shared/config"
	"goal-detector/internal/shared/storage/db"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply the roadmaps schema to DATABASE_URL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		migrationCommand("up", "Apply all pending migrations", db.RunMigrations),
		migrationCommand("down", "Revert the latest migration", db.RollbackMigration),
		migrationCommand("status", "Show applied migrations", db.MigrationStatus),
	)
	return root
}

func migrationCommand(use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			ctx := cmd.Context()
			sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, bootstrap.DBPool(db.MigratePool(), cfg))
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			return run(ctx, sqlDB)
		},
	}
}
