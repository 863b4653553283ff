package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// Cache entry versions. Bump when the cached shape changes so stale
// entries from older builds are ignored instead of misdecoded.
const (
	metricsCacheVersion = 1
	healthCacheVersion  = 1
)

// Fetcher assembles upstream source responses into the snapshot shapes
// the core consumes. It implements contract.MetricsFetcher. Results are
// cached through the configured cache store with the configured TTL;
// a nil cache disables caching.
type Fetcher struct {
	Npm       *NpmClient
	Downloads *DownloadsClient
	GitHub    *GitHubClient
	OSV       *OSVClient
	Bundle    *BundleClient

	cache contract.CacheStore
	ttl   time.Duration
	now   func() time.Time
}

var _ contract.MetricsFetcher = (*Fetcher)(nil)

// NewFetcher builds a Fetcher from the validated config. The cache
// store may be nil.
func NewFetcher(cfg *contract.Config, cache contract.CacheStore) *Fetcher {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	return &Fetcher{
		Npm:       &NpmClient{BaseURL: cfg.RegistryURL, HTTP: client},
		Downloads: &DownloadsClient{BaseURL: cfg.DownloadsURL, HTTP: client},
		GitHub:    &GitHubClient{BaseURL: cfg.GitHubURL, Token: cfg.GitHubToken, HTTP: client},
		OSV:       &OSVClient{BaseURL: cfg.OSVURL, HTTP: client},
		Bundle:    &BundleClient{BaseURL: cfg.BundleURL, HTTP: client},
		cache:     cache,
		ttl:       cfg.CacheTTL,
		now:       time.Now,
	}
}

// FetchMetrics assembles the full metrics snapshot for one package.
// The packument and the weekly download count are required; every other
// source degrades to its zero value when unavailable.
func (f *Fetcher) FetchMetrics(ctx context.Context, name string) (*schema.PackageMetrics, error) {
	cacheKey := "metrics:" + name
	var cached schema.PackageMetrics
	if f.readCache(cacheKey, metricsCacheVersion, &cached) {
		return &cached, nil
	}

	doc, err := f.Npm.Packument(ctx, name)
	if err != nil {
		return nil, err
	}
	latest := doc.Latest()
	if latest == nil {
		return nil, fmt.Errorf("package %s has no published versions", name)
	}

	metrics := &schema.PackageMetrics{
		Name:          doc.Name,
		Deprecated:    latest.Deprecated != "",
		HasTypes:      latest.HasTypes(),
		IsESM:         latest.IsESM(),
		TreeShakeable: latest.TreeShakeable(),
		Keywords:      doc.MergedKeywords(),
		UpdatedAt:     f.now().UTC(),
	}

	var (
		history []schema.WeeklySample
		repo    *schema.RepoSignals
	)

	var g errgroup.Group
	g.Go(func() error {
		weekly, err := f.Downloads.WeeklyDownloads(ctx, name)
		if err != nil {
			return err
		}
		metrics.WeeklyDownloads = weekly
		return nil
	})
	g.Go(func() error {
		history, _ = f.Downloads.History(ctx, name)
		return nil
	})
	g.Go(func() error {
		if owner, repoName, ok := ParseRepoURL(latest.Repository.URL); ok {
			repo, _ = f.GitHub.RepoSignals(ctx, owner, repoName)
		}
		return nil
	})
	g.Go(func() error {
		if vulns, err := f.OSV.VulnerabilityCount(ctx, name); err == nil {
			metrics.SecurityIssues = vulns
		}
		return nil
	})
	g.Go(func() error {
		if stats, err := f.Bundle.Size(ctx, name); err == nil {
			metrics.BundleSize = stats.Gzip
			metrics.BundleSizeRaw = stats.Size
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.DownloadTrend = core.DownloadTrendFromHistory(history)
	metrics.DownloadVelocity = core.DownloadVelocityFromHistory(history)

	if repo != nil {
		metrics.Stars = repo.Stars
		metrics.OpenIssues = repo.OpenIssues
		metrics.RecentCommits = repo.RecentCommits
		metrics.RecentReleases = repo.RecentReleases
		metrics.Contributors = repo.Contributors
		metrics.LastCommitDays = f.daysSince(repo.LastCommit)
	} else {
		metrics.LastCommitDays = f.lastPublishDays(doc)
	}

	f.writeCache(cacheKey, metricsCacheVersion, metrics)
	return metrics, nil
}

// FetchHealthInputs collects the raw signal groups for health scoring.
// Only the packument is required; absent sources stay nil so the
// aggregator can renormalize around them.
func (f *Fetcher) FetchHealthInputs(ctx context.Context, name string) (*contract.HealthInputs, error) {
	cacheKey := "health:" + name
	var cached contract.HealthInputs
	if f.readCache(cacheKey, healthCacheVersion, &cached) {
		return &cached, nil
	}

	doc, err := f.Npm.Packument(ctx, name)
	if err != nil {
		return nil, err
	}
	latest := doc.Latest()
	if latest == nil {
		return nil, fmt.Errorf("package %s has no published versions", name)
	}

	inputs := &contract.HealthInputs{
		Deprecated:        latest.Deprecated != "",
		DeprecatedMessage: latest.Deprecated,
		Keywords:          doc.MergedKeywords(),
	}

	var g errgroup.Group
	g.Go(func() error {
		inputs.Downloads, _ = f.Downloads.History(ctx, name)
		return nil
	})
	g.Go(func() error {
		if owner, repoName, ok := ParseRepoURL(latest.Repository.URL); ok {
			inputs.Repo, _ = f.GitHub.RepoSignals(ctx, owner, repoName)
		}
		return nil
	})
	g.Go(func() error {
		if vulns, err := f.OSV.VulnerabilityCount(ctx, name); err == nil {
			inputs.Vulnerabilities = &vulns
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f.writeCache(cacheKey, healthCacheVersion, inputs)
	return inputs, nil
}

// FetchCorpus searches the registry for candidate packages sharing the
// given keywords. Corpus results are not cached: discovery runs are
// rare and want fresh download counts.
func (f *Fetcher) FetchCorpus(ctx context.Context, keywords []string, size int) ([]schema.CorpusPackage, error) {
	return f.Npm.Search(ctx, keywords, size)
}

// readCache reports whether a fresh entry for key exists, decoding it
// into out when it does. Decode failures and store errors count as
// misses.
func (f *Fetcher) readCache(key string, version int, out any) bool {
	if f.cache == nil || f.ttl <= 0 {
		return false
	}
	data, gotVersion, ts, err := f.cache.Get(key)
	if err != nil || gotVersion != version {
		return false
	}
	if f.now().Unix()-ts >= int64(f.ttl.Seconds()) {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (f *Fetcher) writeCache(key string, version int, value any) {
	if f.cache == nil || f.ttl <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Cache write failures degrade to uncached operation.
	_ = f.cache.Set(key, data, version, f.now().Unix())
}

func (f *Fetcher) daysSince(t time.Time) int {
	if t.IsZero() {
		return maxStaleDays
	}
	days := int(f.now().Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// maxStaleDays stands in when no commit or publish date is known, so
// unknown repos do not read as freshly maintained.
const maxStaleDays = 365

// lastPublishDays falls back to the registry's modified timestamp when
// the package has no reachable GitHub repository.
func (f *Fetcher) lastPublishDays(doc *Packument) int {
	raw, ok := doc.Time["modified"]
	if !ok {
		return maxStaleDays
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return maxStaleDays
	}
	return f.daysSince(t)
}
