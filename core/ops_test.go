package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// opsFetcher is a full fake fetcher for the orchestration layer: canned
// metrics, corpus and health inputs, with corpus call counting.
type opsFetcher struct {
	metrics     map[string]*schema.PackageMetrics
	corpus      []schema.CorpusPackage
	corpusErr   error
	health      map[string]*contract.HealthInputs
	corpusCalls int
}

func (s *opsFetcher) FetchMetrics(_ context.Context, name string) (*schema.PackageMetrics, error) {
	if m, ok := s.metrics[name]; ok {
		return m, nil
	}
	return nil, errors.New("package not found")
}

func (s *opsFetcher) FetchCorpus(_ context.Context, _ []string, _ int) ([]schema.CorpusPackage, error) {
	s.corpusCalls++
	if s.corpusErr != nil {
		return nil, s.corpusErr
	}
	return s.corpus, nil
}

func (s *opsFetcher) FetchHealthInputs(_ context.Context, name string) (*contract.HealthInputs, error) {
	if h, ok := s.health[name]; ok {
		return h, nil
	}
	return nil, errors.New("package not found")
}

func opsConfig() *contract.Config {
	return &contract.Config{
		ResultLimit:       25,
		Workers:           4,
		MinDownloads:      1000,
		MinGroupSize:      2,
		MaxGroupSize:      20,
		AlternativesLimit: 10,
		CorpusSize:        50,
		HealthThreshold:   40,
	}
}

// healthyInputs yields activity 100, releases 75, trend 100, security
// 100 and community 100 for a weighted score of 95.
func healthyInputs() *contract.HealthInputs {
	vulns := 0
	samples := make([]schema.WeeklySample, 0, 12)
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range 12 {
		downloads := 1000
		if i >= 8 {
			downloads = 2000
		}
		samples = append(samples, schema.WeeklySample{Week: base.AddDate(0, 0, 7*i), Downloads: downloads})
	}
	return &contract.HealthInputs{
		Repo: &schema.RepoSignals{
			LastCommit:     time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
			Stars:          50_000,
			Contributors:   200,
			RecentCommits:  60,
			RecentReleases: 5,
		},
		Downloads:       samples,
		Vulnerabilities: &vulns,
		Keywords:        []string{"http", "request"},
	}
}

func deprecatedInputs() *contract.HealthInputs {
	return &contract.HealthInputs{
		Deprecated:        true,
		DeprecatedMessage: "use something else",
		Keywords:          []string{"http", "request"},
	}
}

func TestGetComparisonResult(t *testing.T) {
	cfg := opsConfig()
	fetcher := &opsFetcher{metrics: comparisonFetcher().metrics}

	t.Run("too few names", func(t *testing.T) {
		_, err := GetComparisonResult(context.Background(), cfg, fetcher, []string{"axios"})
		assert.Error(t, err)
	})

	t.Run("ranked result", func(t *testing.T) {
		result, err := GetComparisonResult(context.Background(), cfg, fetcher, []string{"axios", "ky", "request"})
		require.NoError(t, err)
		require.Len(t, result.Packages, 3)
		assert.Equal(t, result.Packages[0].Name, result.Recommendation)
	})

	t.Run("result limit truncates", func(t *testing.T) {
		limited := opsConfig()
		limited.ResultLimit = 2
		result, err := GetComparisonResult(context.Background(), limited, fetcher, []string{"axios", "ky", "request"})
		require.NoError(t, err)
		assert.Len(t, result.Packages, 2)
	})

	t.Run("all fetches fail", func(t *testing.T) {
		_, err := GetComparisonResult(context.Background(), cfg, fetcher, []string{"ghost-1", "ghost-2"})
		assert.Error(t, err)
	})
}

func TestGetCategoryComparisonResult(t *testing.T) {
	cfg := opsConfig()
	cfg.MaxGroupSize = 3
	fetcher := &opsFetcher{
		metrics: comparisonFetcher().metrics,
		corpus:  httpCorpus(),
	}

	result, err := GetCategoryComparisonResult(context.Background(), cfg, fetcher, nil, "http-client")
	require.NoError(t, err)

	assert.Equal(t, "http-client", result.Category)
	assert.Equal(t, "HTTP Clients", result.CategoryName)
	// Corpus members axios, got, ky were selected; got has no metrics
	// and is dropped by the comparison.
	require.Len(t, result.Packages, 2)
	assert.Equal(t, "axios", result.MostPopular)
}

func TestGetCategoryComparisonResultUnknownCategory(t *testing.T) {
	fetcher := &opsFetcher{}
	_, err := GetCategoryComparisonResult(context.Background(), opsConfig(), fetcher, nil, "no-such-category")
	assert.Error(t, err)
	assert.Zero(t, fetcher.corpusCalls, "Unknown categories should not trigger a search")
}

func TestGetPackageHealthResult(t *testing.T) {
	t.Run("healthy package skips alternatives lookup", func(t *testing.T) {
		fetcher := &opsFetcher{
			health: map[string]*contract.HealthInputs{"axios": healthyInputs()},
			corpus: httpCorpus(),
		}
		health, err := GetPackageHealthResult(context.Background(), opsConfig(), fetcher, "axios")
		require.NoError(t, err)

		assert.Equal(t, 95, health.Score)
		assert.Equal(t, schema.StatusHealthy, health.Status)
		assert.Empty(t, health.Alternatives)
		assert.Zero(t, fetcher.corpusCalls, "Healthy packages need no registry search")
	})

	t.Run("deprecated package gets alternatives", func(t *testing.T) {
		fetcher := &opsFetcher{
			health: map[string]*contract.HealthInputs{"request": deprecatedInputs()},
			corpus: httpCorpus(),
		}
		health, err := GetPackageHealthResult(context.Background(), opsConfig(), fetcher, "request")
		require.NoError(t, err)

		assert.Equal(t, 25, health.Score, "Deprecated packages cap at 25")
		assert.Equal(t, schema.StatusDeprecated, health.Status)
		assert.NotEmpty(t, health.Alternatives)
		assert.NotContains(t, health.Alternatives, "request")
		assert.NotEmpty(t, health.Recommendation)
	})

	t.Run("corpus failure degrades to no alternatives", func(t *testing.T) {
		fetcher := &opsFetcher{
			health:    map[string]*contract.HealthInputs{"request": deprecatedInputs()},
			corpusErr: errors.New("search down"),
		}
		health, err := GetPackageHealthResult(context.Background(), opsConfig(), fetcher, "request")
		require.NoError(t, err)
		assert.Empty(t, health.Alternatives)
	})

	t.Run("unknown package", func(t *testing.T) {
		fetcher := &opsFetcher{}
		_, err := GetPackageHealthResult(context.Background(), opsConfig(), fetcher, "ghost")
		assert.Error(t, err)
	})
}

func TestGetDiscoveredGroupsResult(t *testing.T) {
	fetcher := &opsFetcher{corpus: httpCorpus()}
	groups, err := GetDiscoveredGroupsResult(context.Background(), opsConfig(), fetcher, []string{"http"})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "http-client", groups[0].Category)
}

func TestGetAlternativesForResult(t *testing.T) {
	fetcher := &opsFetcher{
		metrics: map[string]*schema.PackageMetrics{
			"axios": {Name: "axios", Keywords: []string{"http", "request", "ajax"}},
			"mute":  {Name: "mute"},
		},
		corpus: httpCorpus(),
	}

	t.Run("group anchored on the package", func(t *testing.T) {
		group, err := GetAlternativesForResult(context.Background(), opsConfig(), fetcher, "axios")
		require.NoError(t, err)
		assert.Equal(t, "http-client", group.Category)
		assert.Equal(t, "axios", group.Packages[0])
		assert.Contains(t, group.Packages, "got")
	})

	t.Run("no keywords", func(t *testing.T) {
		_, err := GetAlternativesForResult(context.Background(), opsConfig(), fetcher, "mute")
		assert.Error(t, err)
	})
}

func TestGetHealthCheckResult(t *testing.T) {
	cfg := opsConfig()
	fetcher := &opsFetcher{
		health: map[string]*contract.HealthInputs{
			"axios":   healthyInputs(),
			"request": deprecatedInputs(),
		},
	}

	result := GetHealthCheckResult(context.Background(), cfg, fetcher, []string{"axios", "request", "ghost"})

	assert.False(t, result.Passed)
	assert.Equal(t, 40, result.Threshold)
	assert.Equal(t, 3, result.TotalPackages)
	require.Len(t, result.FailedPackages, 2)
	assert.Equal(t, "request", result.FailedPackages[0].Name)
	assert.Equal(t, 25, result.FailedPackages[0].Score)
	assert.Equal(t, schema.StatusDeprecated, result.FailedPackages[0].Status)
	assert.Equal(t, "ghost", result.FailedPackages[1].Name)
	assert.Zero(t, result.FailedPackages[1].Score, "Unfetchable packages fail with a zero score")
}

func TestGetHealthCheckResultAllPass(t *testing.T) {
	fetcher := &opsFetcher{
		health: map[string]*contract.HealthInputs{"axios": healthyInputs()},
	}
	result := GetHealthCheckResult(context.Background(), opsConfig(), fetcher, []string{"axios"})
	assert.True(t, result.Passed)
	assert.Empty(t, result.FailedPackages)
}

func TestInferCategoryResult(t *testing.T) {
	id, name := InferCategoryResult(context.Background(), nil, []string{"test", "mock", "assertion"})
	assert.Equal(t, "testing", id)
	assert.Equal(t, "Testing", name)

	id, name = InferCategoryResult(context.Background(), nil, []string{"zzz"})
	assert.Empty(t, id)
	assert.Empty(t, name)
}
