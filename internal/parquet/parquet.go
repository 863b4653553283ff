// Package parquet provides data structures and functions for exporting
// score snapshot data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/pkgpulse/pkgpulse/schema"
)

// ScoreRun represents a single scoring run with metadata.
// This struct maps to the pkgpulse_runs database table.
type ScoreRun struct {
	// RunID is the unique identifier for this scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// PackageCount is the number of packages scored in this run
	PackageCount int32 `parquet:"package_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// PackageScore represents one package's recorded score in a run.
// This struct maps to the pkgpulse_scores database table.
type PackageScore struct {
	// RunID references the parent scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// PackageName is the npm package name
	PackageName string `parquet:"package_name,snappy"`

	// RecordedAt is when this score was recorded (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// Score is the composite quality score on the 0-100 scale
	Score int32 `parquet:"score,snappy"`

	// WeeklyDownloads is the weekly download volume at scoring time
	WeeklyDownloads int64 `parquet:"weekly_downloads,snappy"`

	// BundleSize is the minified+gzipped bundle size in bytes
	BundleSize int32 `parquet:"bundle_size,snappy"`

	// LastCommitDays is the age of the latest commit in days
	LastCommitDays int32 `parquet:"last_commit_days,snappy"`

	// SecurityIssues is the count of known vulnerabilities
	SecurityIssues int32 `parquet:"security_issues,snappy"`

	// Deprecated indicates whether the package was deprecated
	Deprecated bool `parquet:"deprecated,snappy"`
}

// WriteScoreRunsParquet writes a slice of ScoreRun structs to a Parquet file.
func WriteScoreRunsParquet(data []ScoreRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ScoreRun struct tags
	writer := parquet.NewGenericWriter[ScoreRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePackageScoresParquet writes a slice of PackageScore structs to a Parquet file.
func WritePackageScoresParquet(data []PackageScore, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the PackageScore struct tags
	writer := parquet.NewGenericWriter[PackageScore](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertScoreRunRecords converts schema.SnapshotRunRecord to ScoreRun for Parquet export.
func ConvertScoreRunRecords(records []schema.SnapshotRunRecord) []ScoreRun {
	result := make([]ScoreRun, len(records))
	for i, record := range records {
		result[i] = ScoreRun{
			RunID:        record.RunID,
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			PackageCount: record.PackageCount,
			ConfigParams: record.ConfigParams,
		}
	}
	return result
}

// ConvertPackageScoreRecords converts schema.SnapshotScoreRecord to PackageScore for Parquet export.
func ConvertPackageScoreRecords(records []schema.SnapshotScoreRecord) []PackageScore {
	result := make([]PackageScore, len(records))
	for i, record := range records {
		result[i] = PackageScore{
			RunID:           record.RunID,
			PackageName:     record.PackageName,
			RecordedAt:      record.RecordedAt,
			Score:           record.Score,
			WeeklyDownloads: record.WeeklyDownloads,
			BundleSize:      record.BundleSize,
			LastCommitDays:  record.LastCommitDays,
			SecurityIssues:  record.SecurityIssues,
			Deprecated:      record.Deprecated,
		}
	}
	return result
}
