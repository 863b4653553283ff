package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/internal/iocache"
	"github.com/pkgpulse/pkgpulse/schema"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need snapshot access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backendStr := viper.GetString("snapshot-backend")
	connStr := viper.GetString("snapshot-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no metrics caching for snapshot commands)
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize snapshots: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func snapshotMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backendStr := viper.GetString("snapshot-backend")
	connStr := viper.GetString("snapshot-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iocache.GetSnapshotDBFilePath()
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotMigrateSetupWrapper wraps snapshotMigrateSetup to provide PreRunE for migrate command.
func snapshotMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotMigrateSetup()
}

// snapshotsCmd focused on score history management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup) instead
// of the full sharedSetup used by comparison commands. This avoids upstream
// endpoint validation and complex config processing for simple data operations.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage historical score tracking and exports",
	Long: `Manage historical score data recorded by tracked comparison runs.

With --track enabled, pkgpulse stores every comparison run:
- Run metadata (timestamp, category, configuration)
- Per-package composite scores, downloads, bundle sizes and badges

This enables longitudinal dependency health reporting and data export
for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show score tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  pkgpulse snapshots status

  # Export for analysis in pandas/DuckDB
  pkgpulse snapshots export --output-file scores.parquet`,
}

// snapshotsClearCmd clears the snapshot data.
var snapshotsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical score tracking data",
	Long: `Delete all stored comparison runs and package score history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  pkgpulse snapshots export --output-file backup.parquet
  pkgpulse snapshots clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearSnapshots(cfg.SnapshotBackend, iocache.GetSnapshotDBFilePath(), cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshot data", err)
		}
		fmt.Println("Snapshot data cleared successfully.")
	},
}

// snapshotsStatusCmd shows snapshot status.
var snapshotsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display score tracking statistics and connection details",
	Long: `Show detailed information about historical score tracking.

Displays:
- Backend type and connection status
- Total number of recorded runs and scores
- Last and oldest run timestamps

Examples:
  # Check tracking status
  pkgpulse snapshots status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetSnapshotStore()
		if store == nil {
			contract.LogFatal("Failed to get snapshot status", fmt.Errorf("snapshot backend is disabled"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		iocache.PrintSnapshotStatus(status)
	},
}

// snapshotsExportCmd exports snapshot data to Parquet files.
var snapshotsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical scores to Parquet for BI tools and analytics",
	Long: `Export all stored score data to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each tracked comparison
- Scores - per-package composite scores and raw metrics

Requires: --output-file parameter

Examples:
  # Export all data
  pkgpulse snapshots export --output-file pkgpulse-data.parquet

  # Use with DuckDB for analysis
  pkgpulse snapshots export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet/runs.parquet') LIMIT 10"`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteSnapshotExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export snapshot data", err)
		}
	},
}

// snapshotsMigrateCmd runs database migrations for the snapshot store.
var snapshotsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the score tracking store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  pkgpulse snapshots migrate

  # Rollback to previous version
  pkgpulse snapshots migrate --target-version 0`,
	PreRunE: snapshotMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateSnapshots(cfg.SnapshotBackend, cfg.SnapshotDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
