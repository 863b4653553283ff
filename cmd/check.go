package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/internal/outwriter"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <package> [package...]",
	Short: "Enforce health thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Score each named package and fail with a non-zero exit code when any
falls below the health threshold.

Designed for CI/CD integration: run it against your direct dependencies
to block merges that lean on deprecated or abandoned packages.

Default threshold: 40

Examples:
  # Gate a dependency update PR
  pkgpulse check axios lodash express

  # Stricter policy for security-sensitive services
  pkgpulse check axios --health-threshold 60

  # Machine readable result for pipeline annotations
  pkgpulse check axios request --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		result := core.GetHealthCheckResult(rootCtx, cfg, newFetcher(), args)
		if err := outwriter.NewOutWriter().WriteCheck(result, cfg); err != nil {
			contract.LogFatal("Cannot write check result", err)
		}
		if !result.Passed {
			os.Exit(1)
		}
	},
}
