package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/snippet-review/internal/config"
	"github.com/sevigo/snippet-review/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema if it does not exist",
	Long: `Connect to DATABASE_URL and apply the embedded schema migrations.
Running it against an up-to-date database changes nothing.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dbConn, cleanup, err := db.NewDatabase(&cfg.Database)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := dbConn.RunMigrations(); err != nil {
			return err
		}

		version, dirty, err := dbConn.SchemaVersion()
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		successColor.Fprintf(cmd.OutOrStdout(), "✓ %s schema at version %d", dbConn.Dialect, version)
		if dirty {
			warnColor.Fprint(cmd.OutOrStdout(), " (dirty)")
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(migrateCmd)
}
