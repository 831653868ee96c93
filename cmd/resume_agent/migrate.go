package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

var migrateDatabaseURL string

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	databaseURL := migrateDatabaseURL
	if databaseURL == "" {
		databaseURL = rt.cfg.Database.URL
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}

	if err := db.Migrate(cmd.Context(), databaseURL); err != nil {
		return err
	}
	rt.logger.Info("migrations applied")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
	return nil
}
