package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"opportunity-finder/internal/storage/sqlstore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the development database schema",
	Long: `Apply or roll back the embedded schema migrations for the configured driver.

Intended for local development databases; serve never migrates.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *sqlstore.Migrator) error {
			if err := m.Up(); err != nil {
				return err
			}
			return printVersion(cmd, m)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations (drops the opportunities table)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagMigrateYes {
			return fmt.Errorf("refusing to drop the schema without --yes")
		}
		return withMigrator(func(m *sqlstore.Migrator) error {
			return m.Down()
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *sqlstore.Migrator) error {
			return printVersion(cmd, m)
		})
	},
}

var flagMigrateYes bool

func init() {
	migrateDownCmd.Flags().BoolVar(&flagMigrateYes, "yes", false, "confirm dropping the schema")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func withMigrator(fn func(*sqlstore.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := sqlstore.NewMigrator(cfg.Database)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func printVersion(cmd *cobra.Command, m *sqlstore.Migrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	state := scoreHigh("clean")
	if dirty {
		state = scoreLow("dirty")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", v, state)
	return nil
}
