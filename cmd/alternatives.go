package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/internal/outwriter"
	"github.com/pkgpulse/pkgpulse/schema"
)

// alternativesCmd finds same-category alternatives for one package.
var alternativesCmd = &cobra.Command{
	Use:   "alternatives <package>",
	Short: "Find alternative packages in the same category.",
	Long: `Infer the package's category from its registry keywords, then list other
packages in that category ordered by download volume.

The named package leads the group so the output doubles as input for
'pkgpulse compare'.

Examples:
  # What could replace this dependency?
  pkgpulse alternatives moment

  # Cap the list for a quick look
  pkgpulse alternatives request --alternatives-limit 5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		group, err := core.GetAlternativesForResult(rootCtx, cfg, newFetcher(), args[0])
		if err != nil {
			contract.LogFatal("Cannot find alternatives", err)
		}
		if err := outwriter.NewOutWriter().WriteAlternatives([]schema.AlternativeGroup{*group}, cfg); err != nil {
			contract.LogFatal("Cannot write alternatives", err)
		}
	},
}

// discoverCmd runs keyword-driven alternative group discovery.
var discoverCmd = &cobra.Command{
	Use:   "discover <keyword> [keyword...]",
	Short: "Discover alternative groups from registry keyword search.",
	Long: `Search the npm registry for packages sharing the given keywords, filter
out low-traffic results and cluster the rest into alternative groups by
inferred category.

Groups respect the configured size bounds and carry a confidence that
grows with group size.

Examples:
  # Map the state management landscape
  pkgpulse discover state management store

  # Stricter corpus for a niche topic
  pkgpulse discover orm database --min-downloads 5000 --corpus-size 100`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		groups, err := core.GetDiscoveredGroupsResult(rootCtx, cfg, newFetcher(), args)
		if err != nil {
			contract.LogFatal("Cannot discover alternatives", err)
		}
		if err := outwriter.NewOutWriter().WriteAlternatives(groups, cfg); err != nil {
			contract.LogFatal("Cannot write alternatives", err)
		}
	},
}
