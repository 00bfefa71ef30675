package cli

import (
	"database/sql"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/planvault/internal/config"
	"github.com/example/planvault/internal/db"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply, inspect, roll back, or reset the schema.

Running "migrate" with no subcommand applies all pending units.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRawDB(func(conn *sql.DB) error {
				applied, err := db.Migrate(conn)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				if applied == 0 {
					fmt.Println("Schema is up to date.")
					return nil
				}
				fmt.Printf("✓ Applied %d migration(s), now at version %d\n", applied, db.LatestVersion())
				return nil
			})
		},
	}

	cmd.AddCommand(migrateStatusCmd())
	cmd.AddCommand(migrateRollbackCmd())
	cmd.AddCommand(migrateResetCmd())

	return cmd
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRawDB(func(conn *sql.DB) error {
				current, err := db.CurrentVersion(conn)
				if err != nil {
					return fmt.Errorf("failed to read schema version: %w", err)
				}
				latest := db.LatestVersion()
				fmt.Printf("Schema version: %d (latest %d)\n", current, latest)
				if current < latest {
					color.Yellow("%d migration(s) pending. Run 'planvault migrate' to apply.", latest-current)
				}
				return nil
			})
		},
	}
}

func migrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the most recent migration unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRawDB(func(conn *sql.DB) error {
				if err := db.Rollback(conn); err != nil {
					return fmt.Errorf("rollback failed: %w", err)
				}
				current, err := db.CurrentVersion(conn)
				if err != nil {
					return err
				}
				fmt.Printf("✓ Rolled back to version %d\n", current)
				return nil
			})
		},
	}
}

func migrateResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop everything and rebuild the schema from scratch",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("reset destroys all data; re-run with --force to confirm")
			}
			return withRawDB(func(conn *sql.DB) error {
				if err := db.Reset(conn); err != nil {
					return fmt.Errorf("reset failed: %w", err)
				}
				fmt.Printf("✓ Schema rebuilt at version %d\n", db.LatestVersion())
				return nil
			})
		},
	}

	cmd.Flags().Bool("force", false, "Confirm the destructive reset")

	return cmd
}

// withRawDB opens the database without auto-migrating so the commands
// above control exactly which units run.
func withRawDB(fn func(*sql.DB) error) error {
	path, err := config.DatabasePath()
	if err != nil {
		return err
	}
	conn, err := db.OpenRaw(path)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}
