package cmd

import (
	"github.com/spf13/cobra"

	"github.com/solatis/otds/internal/core/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent ingestions from the ledger",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "maximum number of ingestions to list")
}

// historyEntry is a ledger row annotated with duplicate detection.
type historyEntry struct {
	db.Ingestion `yaml:",inline"`
	// Duplicate marks successful ingestions whose checksum was already
	// ingested successfully before.
	Duplicate bool `yaml:"duplicate,omitempty"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	database, ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	rows, err := ledger.List(limit)
	if err != nil {
		return err
	}
	return writeYAML(cmd.OutOrStdout(), markDuplicates(rows))
}

// markDuplicates flags every successful row whose checksum also appears on
// an older successful row. rows are newest first.
func markDuplicates(rows []db.Ingestion) []historyEntry {
	out := make([]historyEntry, len(rows))
	seen := make(map[string]bool)
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		out[i] = historyEntry{Ingestion: r}
		if r.Status != db.StatusOK {
			continue
		}
		out[i].Duplicate = seen[r.Checksum]
		seen[r.Checksum] = true
	}
	return out
}
