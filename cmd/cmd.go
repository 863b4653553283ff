// Package cmd defines the command-line interface for pkgpulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(alternativesCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(snapshotsCmd)

	// Add the categories subcommands to the parent categories command
	categoriesCmd.AddCommand(categoriesInferCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the snapshots subcommands to the parent snapshots command
	snapshotsCmd.AddCommand(snapshotsClearCmd)
	snapshotsCmd.AddCommand(snapshotsStatusCmd)
	snapshotsCmd.AddCommand(snapshotsExportCmd)
	snapshotsCmd.AddCommand(snapshotsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-package metadata (raw bundle size, issues, contributors)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("registry-url", "", "npm registry base URL override")
	rootCmd.PersistentFlags().String("downloads-url", "", "npm downloads API base URL override")
	rootCmd.PersistentFlags().String("github-url", "", "GitHub API base URL override")
	rootCmd.PersistentFlags().String("osv-url", "", "OSV API base URL override")
	rootCmd.PersistentFlags().String("bundle-url", "", "bundlephobia API base URL override")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub API token (prefer PKGPULSE_GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().String("http-timeout", "", "Timeout per upstream HTTP request (e.g. 15s)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", "", "Metrics cache time-to-live (e.g. 1h)")
	rootCmd.PersistentFlags().Bool("track", false, "Record comparison scores to the snapshot store")
	rootCmd.PersistentFlags().String("snapshot-backend", "", "Snapshot tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for snapshot tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().Int("min-downloads", contract.DefaultMinDownloads, "Minimum weekly downloads for discovery candidates")
	rootCmd.PersistentFlags().Int("min-group-size", contract.DefaultMinGroupSize, "Minimum packages per alternative group")
	rootCmd.PersistentFlags().Int("max-group-size", contract.DefaultMaxGroupSize, "Maximum packages per alternative group")
	rootCmd.PersistentFlags().Int("alternatives-limit", contract.DefaultAlternativesLimit, "Maximum alternatives returned per package")
	rootCmd.PersistentFlags().Int("corpus-size", contract.DefaultCorpusSize, "Number of registry search results per discovery pass")
	rootCmd.PersistentFlags().Int("health-threshold", contract.DefaultHealthThreshold, "Health score below which check fails")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().Bool("explain", false, "Print per-package score reasons")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address for the REST API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of snapshotsMigrateCmd to Viper
	snapshotsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(snapshotsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshots migrate flags", err)
	}
}
