package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/pinpipe/regions"
	"github.com/gaurav-prasanna/pinpipe/store"
)

var (
	flagRegionsDryRun bool
	flagRegionsStore  string
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Assign a region to every saved place",
	Long: `Regions classifies every place in the store by its coordinates, prints the
per-region counts and writes the region back to each place whose region changed.

Rules are read from regions.rules in the config file; without rules the
Southcentral Alaska defaults are used.`,
	Args: cobra.NoArgs,
	RunE: runRegions,
}

func init() {
	rootCmd.AddCommand(regionsCmd)

	regionsCmd.Flags().BoolVar(&flagRegionsDryRun, "dry-run", false, "Show assignments without writing them")
	regionsCmd.Flags().StringVar(&flagRegionsStore, "store", "", "Store driver: yaml, sqlite or postgres (overrides config)")
}

func runRegions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	classifier, err := regions.New(cfg.Regions.Rules)
	if err != nil {
		return err
	}

	storeCfg := cfg.Store
	if flagRegionsStore != "" {
		storeCfg.Driver = flagRegionsStore
	}
	st, err := store.Open(ctx, storeCfg)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	return assignRegions(ctx, cmd.OutOrStdout(), st, classifier, flagRegionsDryRun)
}

// assignRegions classifies every stored place and persists changed regions
// unless dryRun is set.
func assignRegions(ctx context.Context, out io.Writer, st store.Store, c *regions.Classifier, dryRun bool) error {
	places, err := st.Places(ctx)
	if err != nil {
		return err
	}
	if len(places) == 0 {
		fmt.Fprintln(out, "No places in the store.")
		return nil
	}

	plan := c.Classify(places)
	fmt.Fprintf(out, "Classified %d places:\n", len(places))
	for _, name := range plan.RegionNames() {
		fmt.Fprintf(out, "  %s: %d\n", name, plan.Counts[name])
	}

	changed := plan.Changed()
	if len(changed) == 0 {
		fmt.Fprintln(out, "No updates needed.")
		return nil
	}

	fmt.Fprintf(out, "\n%d place(s) need a region update:\n", len(changed))
	for _, a := range changed {
		fmt.Fprintf(out, "  %s -> %s\n", a.Name, a.Region)
	}
	if dryRun {
		fmt.Fprintln(out, "\nDry run: no changes written.")
		return nil
	}

	for _, a := range changed {
		if err := st.SetRegion(ctx, a.ID, a.Region); err != nil {
			return err
		}
	}
	zap.L().Info("regions: updated places", zap.Int("count", len(changed)))
	fmt.Fprintf(out, "\n✓ Updated %d place(s).\n", len(changed))
	return nil
}
