package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/internal/iocache"
	"github.com/pkgpulse/pkgpulse/internal/outwriter"
	"github.com/pkgpulse/pkgpulse/schema"
)

// compareCmd ranks an explicit set of packages against each other.
var compareCmd = &cobra.Command{
	Use:   "compare <package> <package> [package...]",
	Short: "Compare two or more npm packages head to head.",
	Long: `Fetch live registry, GitHub, OSV and bundlephobia signals for each named
package, compute composite scores and print a ranked comparison.

Use cases:
- Choosing between competing libraries before adding a dependency
- Auditing an existing dependency against its rivals
- Checking whether a migration target is actually healthier

Examples:
  # Pick an HTTP client
  pkgpulse compare axios got ky node-fetch

  # Include per-package score reasons
  pkgpulse compare react vue svelte --explain

  # Export the ranking for a dependency review doc
  pkgpulse compare lodash ramda --output csv --output-file clients.csv`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		start := time.Now()
		result, err := core.GetComparisonResult(rootCtx, cfg, newFetcher(), args)
		if err != nil {
			contract.LogFatal("Cannot run comparison", err)
		}
		finishComparison(result, start)
	},
}

// categoryCmd ranks the member packages of a known category.
var categoryCmd = &cobra.Command{
	Use:   "category <category-id>",
	Short: "Compare the packages of a seed or discovered category.",
	Long: `Resolve a category to its member packages via registry keyword search,
then score and rank the members like an explicit comparison.

Category ids come from the seed catalog and from discovery runs; list
them with 'pkgpulse categories'.

Examples:
  # Rank the HTTP client ecosystem
  pkgpulse category http-client

  # Top five testing frameworks as JSON
  pkgpulse category testing --limit 5 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		start := time.Now()
		store := iocache.Manager.GetCategoryStore()
		result, err := core.GetCategoryComparisonResult(rootCtx, cfg, newFetcher(), store, args[0])
		if err != nil {
			contract.LogFatal("Cannot run category comparison", err)
		}
		finishComparison(result, start)
	},
}

// finishComparison writes a comparison result and records it to the
// snapshot store when tracking is enabled.
func finishComparison(result *schema.GeneratedComparison, start time.Time) {
	recordSnapshot(result)
	if err := outwriter.NewOutWriter().WriteComparison(result, cfg, time.Since(start)); err != nil {
		contract.LogFatal("Cannot write comparison", err)
	}
}

// recordSnapshot persists one scoring run. Failures warn instead of
// aborting so tracking never blocks output.
func recordSnapshot(result *schema.GeneratedComparison) {
	if !cfg.Track || result == nil {
		return
	}
	store := iocache.Manager.GetSnapshotStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(time.Now(), map[string]any{
		"category": result.Category,
		"limit":    cfg.ResultLimit,
	})
	if err != nil {
		contract.LogWarn("Cannot begin snapshot run", err)
		return
	}
	for _, pkg := range result.Packages {
		if err := store.RecordScore(runID, pkg); err != nil {
			contract.LogWarn("Cannot record snapshot score", err)
		}
	}
	if err := store.EndRun(runID, time.Now(), len(result.Packages)); err != nil {
		contract.LogWarn("Cannot finish snapshot run", err)
	}
}
