package schema

import "time"

// CacheStatus represents the status of the metrics cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// SnapshotStatus represents the status of the score snapshot store.
type SnapshotStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
	TotalPackages int       `json:"total_packages"`
}

// SnapshotRunRecord represents a row from the pkgpulse_runs table.
type SnapshotRunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	PackageCount int32
	ConfigParams *string
}

// SnapshotScoreRecord represents a row from the pkgpulse_scores table.
type SnapshotScoreRecord struct {
	RunID           int64
	PackageName     string
	RecordedAt      time.Time
	Score           int32
	WeeklyDownloads int64
	BundleSize      int32
	LastCommitDays  int32
	SecurityIssues  int32
	Deprecated      bool
}

// CheckResult holds the results of a health gate check.
type CheckResult struct {
	Passed         bool                 `json:"passed"`
	Threshold      int                  `json:"threshold"`
	TotalPackages  int                  `json:"total_packages"`
	FailedPackages []CheckFailedPackage `json:"failed_packages"`
}

// CheckFailedPackage represents a package below the gate threshold.
type CheckFailedPackage struct {
	Name   string       `json:"name"`
	Score  int          `json:"score"`
	Status HealthStatus `json:"status"`
}
