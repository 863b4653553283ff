package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/internal/outwriter"
)

// healthCmd assesses a single package's maintenance health.
var healthCmd = &cobra.Command{
	Use:   "health <package>",
	Short: "Assess the maintenance health of a single npm package.",
	Long: `Build a weighted health score from maintainer activity, download trend,
known vulnerabilities and community signals.

Deprecated packages are capped at a failing score and come with a
recommendation plus same-category alternatives when any exist.

Examples:
  # Check a dependency before upgrading
  pkgpulse health express

  # Machine readable report for dashboards
  pkgpulse health left-pad --output json

  # Scoped packages work too
  pkgpulse health @tanstack/react-query`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		health, err := core.GetPackageHealthResult(rootCtx, cfg, newFetcher(), args[0])
		if err != nil {
			contract.LogFatal("Cannot assess package health", err)
		}
		if err := outwriter.NewOutWriter().WriteHealth(health, cfg); err != nil {
			contract.LogFatal("Cannot write health report", err)
		}
	},
}
