package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/devcamper/internal/config"
	"github.com/templui/devcamper/internal/db"
	"github.com/templui/devcamper/internal/logger"
	"github.com/templui/devcamper/internal/seed"
)

// withDB loads the config, opens the database and runs fn against it.
func withDB(ctx context.Context, migrate bool, fn func(*config.Config, *sqlx.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flush := logger.Init(cfg.IsDevelopment(), "")
	defer flush()

	database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	if migrate {
		err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
		if err != nil {
			return err
		}
	}

	return fn(cfg, database)
}

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), true, func(*config.Config, *sqlx.DB) error { return nil })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), false, func(cfg *config.Config, database *sqlx.DB) error {
				return db.MigrateDown(cmd.Context(), database.DB, cfg.DBDriver)
			})
		},
	})

	return cmd
}

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import or destroy the sample data set",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import",
		Short: "Insert sample users, bootcamps, courses and reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), true, func(_ *config.Config, database *sqlx.DB) error {
				return seed.New(database).Import(cmd.Context())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "destroy",
		Short: "Delete all rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), true, func(_ *config.Config, database *sqlx.DB) error {
				return seed.New(database).Destroy(cmd.Context())
			})
		},
	})

	return cmd
}
