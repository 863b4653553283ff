package iocache

import (
	"errors"
	"fmt"

	"github.com/pkgpulse/pkgpulse/internal/parquet"
)

// ExecuteSnapshotExport performs the actual export of snapshot data to Parquet files.
func ExecuteSnapshotExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the snapshot store
	store := Manager.GetSnapshotStore()
	if store == nil {
		return errors.New("snapshot tracking is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get snapshot status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no snapshot data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scoring runs: %d\n", status.TotalRuns)
	fmt.Printf("Total package scores: %d\n", status.TotalPackages)

	// Retrieve all scoring runs
	runs, err := store.GetRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scoring runs: %w", err)
	}

	// Retrieve all package scores
	scores, err := store.GetScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve package scores: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertScoreRunRecords(runs)
	parquetScores := parquet.ConvertPackageScoreRecords(scores)

	// Write scoring runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteScoreRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write scoring runs: %w", err)
	}
	fmt.Printf("Exported %d scoring runs to: %s\n", len(parquetRuns), runsFile)

	// Write package scores to Parquet
	scoresFile := outputFile + ".scores.parquet"
	if err := parquet.WritePackageScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write package scores: %w", err)
	}
	fmt.Printf("Exported %d package scores to: %s\n", len(parquetScores), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
