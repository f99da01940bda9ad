package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solatis/otds/internal/core/ingest"
	"github.com/solatis/otds/internal/core/metrics"
	"github.com/solatis/otds/internal/core/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Ingest OTDS documents as they are dropped into DIR",
	Long: `Watches DIR and ingests every new or rewritten document matching
watch.extensions into one long-lived catalog. Documents given with --seed are
ingested first, in order. Failures are logged and recorded; the watcher keeps
running.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringSlice("seed", nil, "documents to ingest before watching")
}

func runWatch(cmd *cobra.Command, args []string) error {
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
	svc, err := newService(cfg, ledger, m, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seeds, _ := cmd.Flags().GetStringSlice("seed")
	for _, path := range seeds {
		if _, err := svc.IngestFile(ctx, path); err != nil {
			return fmt.Errorf("seed %s: %w", path, err)
		}
	}
	exportMetrics(cfg, m, logger)

	w := watch.New(args[0], cfg.Watch, svc, logger)
	w.OnResult = func(path string, res *ingest.Result, err error) {
		exportMetrics(cfg, m, logger)
	}
	return w.Run(ctx)
}
