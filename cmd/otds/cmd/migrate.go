package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solatis/otds/internal/core/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending ledger migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("status", false, "print migration status instead of applying")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.Ledger.DBURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if status, _ := cmd.Flags().GetBool("status"); status {
		statuses, err := db.MigrateStatus(database)
		if err != nil {
			return err
		}
		return writeYAML(cmd.OutOrStdout(), statuses)
	}

	if err := db.MigrateUp(database); err != nil {
		return err
	}
	logger.Info("migrations applied", "driver", database.DriverName())
	return nil
}
