package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/loom/pkg/db"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back database migrations",
	Long:      `migrate runs goose SQL migrations from the migrations directory against the configured database. "up" applies all pending migrations, "down" rolls back the most recent one.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		if _, err := os.Stat(migrationsDir); err != nil {
			return fmt.Errorf("migrations directory %q: %w", migrationsDir, err)
		}

		ctx := cmd.Context()

		pool, err := db.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		migrations := os.DirFS(migrationsDir)

		switch args[0] {
		case "up":
			return db.Migrate(ctx, pool, migrations, cfg.Database.MigrationsTable, log)
		case "down":
			return db.Rollback(ctx, pool, migrations, cfg.Database.MigrationsTable, log)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "directory containing goose SQL migrations")
}
