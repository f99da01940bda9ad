package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solatis/otds/internal/core/config"
	"github.com/solatis/otds/internal/core/db"
	"github.com/solatis/otds/internal/core/logging"
)

var (
	configFile string
	dbURL      string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:           "otds",
	Short:         "OTDS travel catalog ingestion",
	Long:          `otds reads OTDS markup documents into a validated in-memory catalog and keeps a ledger of every ingestion.`,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "ledger database URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration with the persistent flags layered on top and
// builds the logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configFile, rootCmd.PersistentFlags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logging.New(cfg.Log.Level, cfg.Log.Format), nil
}

// openLedger connects to the ledger database and refuses to run on a
// schema with pending migrations.
func openLedger(cfg *config.Config) (*sqlx.DB, *db.Ledger, error) {
	database, err := db.Open(cfg.Ledger.DBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	statuses, err := db.MigrateStatus(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to check migrations: %w", err)
	}
	for _, s := range statuses {
		if !s.Applied {
			database.Close()
			return nil, nil, fmt.Errorf("migration %s not applied - run 'otds migrate' first", s.ID)
		}
	}

	ledger, err := db.NewLedger(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return database, ledger, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
