package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solatis/otds/internal/catalog"
	"github.com/solatis/otds/internal/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Parse OTDS documents without touching the ledger and print the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("keys", false, "list record keys per collection")
}

type catalogSummary struct {
	Stats catalog.Stats          `yaml:"stats"`
	Keys  map[string][]types.Key `yaml:"keys,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	svc, err := newService(cfg, nil, nil, logger)
	if err != nil {
		return err
	}

	for _, path := range args {
		if _, err := svc.IngestFile(cmd.Context(), path); err != nil {
			return fmt.Errorf("inspect %s: %w", path, err)
		}
	}

	summary := catalogSummary{Stats: svc.Catalog().Stats()}
	if withKeys, _ := cmd.Flags().GetBool("keys"); withKeys {
		summary.Keys = collectionKeys(svc.Catalog())
	}
	return writeYAML(cmd.OutOrStdout(), summary)
}

// collectionKeys lists the keys of every non-empty collection in document
// order, using the same collection names as Stats.Collections.
func collectionKeys(c *catalog.Catalog) map[string][]types.Key {
	keys := map[string][]types.Key{
		"accommodations":     c.Accommodations().Keys(),
		"price_items":        c.AccommodationPriceItems().Keys(),
		"brands":             c.Brands().Keys(),
		"flights":            c.Flights().Keys(),
		"defined_components": c.DefinedComponents().Keys(),
		"products":           c.Products().Keys(),
		"globals":            c.Globals().Keys(),
	}
	for name, k := range keys {
		if len(k) == 0 {
			delete(keys, name)
		}
	}
	return keys
}
