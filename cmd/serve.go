package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pkgpulse/pkgpulse/internal/httpapi"
	"github.com/pkgpulse/pkgpulse/internal/iocache"
)

// serveCmd runs the REST API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pkgpulse REST API server.",
	Long: `Serve comparisons, health reports and discovery over HTTP.

Routes are mounted under /api/v1; GET / answers a liveness probe.

Examples:
  # Default address
  pkgpulse serve

  # Bind elsewhere
  pkgpulse serve --addr :9090

  # Container friendly config via env
  PKGPULSE_ADDR=:8080 PKGPULSE_CACHE_BACKEND=none pkgpulse serve`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return httpapi.StartHTTPServer(cfg, newFetcher(), iocache.Manager.GetCategoryStore())
	},
}
