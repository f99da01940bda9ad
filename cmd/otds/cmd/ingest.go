package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/solatis/otds/internal/catalog"
	"github.com/solatis/otds/internal/core/config"
	"github.com/solatis/otds/internal/core/ingest"
	"github.com/solatis/otds/internal/core/metrics"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest FILE...",
	Short: "Read OTDS documents in order and record them in the ledger",
	Long: `Reads every FILE into one catalog, in the order given. The first failing
document stops the run; earlier documents stay recorded in the ledger.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// ingestSummary is printed for every ingested document.
type ingestSummary struct {
	IngestID   types.IngestID `yaml:"ingest_id"`
	Source     string         `yaml:"source"`
	Checksum   string         `yaml:"checksum"`
	UpdateMode string         `yaml:"update_mode,omitempty"`
	Duplicate  bool           `yaml:"duplicate,omitempty"`
	Added      catalog.Stats  `yaml:"added"`
	Error      string         `yaml:"error,omitempty"`
}

func summarize(res *ingest.Result, err error) ingestSummary {
	s := ingestSummary{
		IngestID:   res.IngestID,
		Source:     res.Source,
		Checksum:   res.Checksum,
		UpdateMode: res.UpdateMode,
		Duplicate:  res.Duplicate,
		Added:      res.Added,
	}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// newService builds an ingest service over a fresh catalog.
func newService(cfg *config.Config, ledger ingest.Ledger, m *metrics.Metrics, logger *slog.Logger) (*ingest.Service, error) {
	return ingest.NewService(catalog.New(markup.NewDialect()), cfg.Ingest, ledger, m, logger)
}

// exportMetrics writes the metrics textfile when one is configured.
func exportMetrics(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Error("metrics export failed", "path", cfg.Metrics.Textfile, "error", err)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	database, ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	m := metrics.New()
	defer exportMetrics(cfg, m, logger)

	svc, err := newService(cfg, ledger, m, logger)
	if err != nil {
		return err
	}

	var summaries []ingestSummary
	for _, path := range args {
		res, err := svc.IngestFile(cmd.Context(), path)
		if res != nil {
			summaries = append(summaries, summarize(res, err))
		}
		if err != nil {
			if werr := writeYAML(cmd.OutOrStdout(), summaries); werr != nil {
				logger.Error("write summary", "error", werr)
			}
			return fmt.Errorf("ingest %s: %w", path, err)
		}
	}
	return writeYAML(cmd.OutOrStdout(), summaries)
}
