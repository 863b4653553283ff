// Package contract provides interfaces and shared utilities for the
// pkgpulse internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/pkgpulse/pkgpulse/schema"
)

// MetricsFetcher produces the measurement snapshot for one package.
// Implementations may hit the network or a cache; a nil result with a
// nil error means the package could not be measured. The comparison
// generator invokes it concurrently, once per package.
type MetricsFetcher interface {
	// FetchMetrics returns the metrics snapshot for a package.
	FetchMetrics(ctx context.Context, name string) (*schema.PackageMetrics, error)

	// FetchCorpus collects candidate packages sharing the given keywords,
	// for alternative discovery.
	FetchCorpus(ctx context.Context, keywords []string, size int) ([]schema.CorpusPackage, error)

	// FetchHealthInputs returns the raw health signal inputs for a package.
	FetchHealthInputs(ctx context.Context, name string) (*HealthInputs, error)
}

// HealthInputs bundles the pre-fetched raw signals consumed by the
// health aggregator. Nil slices/pointers mean the source was unavailable.
type HealthInputs struct {
	Repo              *schema.RepoSignals
	Downloads         []schema.WeeklySample
	Vulnerabilities   *int
	Deprecated        bool
	DeprecatedMessage string
	Keywords          []string
}

// KVStore is the hash-shaped key-value interface the category catalog
// reads discovered categories from. Mirrors the store the discovery job
// writes to.
type KVStore interface {
	// HGetAll returns every field/value pair stored under key.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// HGet returns the value of one field under key, or "" when absent.
	HGet(ctx context.Context, key, field string) (string, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetMetricsStore() CacheStore
	GetCategoryStore() KVStore
	GetSnapshotStore() SnapshotStore
}

// CacheStore defines the interface for TTL cache data storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// SnapshotStore defines the interface for tracking scoring runs and
// recording per-package score history.
type SnapshotStore interface {
	// BeginRun creates a new scoring run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalPackages int) error

	// RecordScore stores one package's score for a run.
	RecordScore(runID int64, pkg schema.ScoredPackage) error

	// GetRuns returns all recorded runs, newest first.
	GetRuns() ([]schema.SnapshotRunRecord, error)

	// GetScores returns all recorded scores, newest run first.
	GetScores() ([]schema.SnapshotScoreRecord, error)

	// GetStatus returns status information about the snapshot store.
	GetStatus() (schema.SnapshotStatus, error)

	// Clear removes all recorded runs and scores.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
