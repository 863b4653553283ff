package core

import (
	"context"
	"errors"
	"testing"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves canned metrics keyed by package name and fails for
// anything else.
type stubFetcher struct {
	metrics map[string]*schema.PackageMetrics
}

func (s *stubFetcher) FetchMetrics(_ context.Context, name string) (*schema.PackageMetrics, error) {
	if m, ok := s.metrics[name]; ok {
		return m, nil
	}
	return nil, errors.New("package not found")
}

func (s *stubFetcher) FetchCorpus(_ context.Context, _ []string, _ int) ([]schema.CorpusPackage, error) {
	return nil, errors.New("not implemented")
}

func (s *stubFetcher) FetchHealthInputs(_ context.Context, _ string) (*contract.HealthInputs, error) {
	return nil, errors.New("not implemented")
}

func comparisonFetcher() *stubFetcher {
	return &stubFetcher{metrics: map[string]*schema.PackageMetrics{
		"axios": {
			Name:            "axios",
			WeeklyDownloads: 45_000_000,
			DownloadTrend:   schema.TrendStable,
			BundleSize:      13_000,
			LastCommitDays:  7,
			RecentCommits:   40,
			Stars:           104_000,
			HasTypes:        true,
		},
		"ky": {
			Name:            "ky",
			WeeklyDownloads: 2_000_000,
			DownloadTrend:   schema.TrendGrowing,
			BundleSize:      4_000,
			LastCommitDays:  3,
			RecentCommits:   25,
			Stars:           13_000,
			HasTypes:        true,
			IsESM:           true,
			TreeShakeable:   true,
		},
		"request": {
			Name:            "request",
			WeeklyDownloads: 15_000_000,
			DownloadTrend:   schema.TrendDeclining,
			BundleSize:      180_000,
			LastCommitDays:  900,
			Stars:           25_000,
			Deprecated:      true,
		},
	}}
}

// TestGenerateComparison covers the ranked result and headline picks.
func TestGenerateComparison(t *testing.T) {
	group := schema.AlternativeGroup{
		Category:     "http-client",
		CategoryName: "HTTP Clients",
		Packages:     []string{"axios", "ky", "request"},
	}

	c := GenerateComparison(context.Background(), group, comparisonFetcher())
	require.NotNil(t, c)

	assert.Equal(t, "http-client", c.Category)
	require.Len(t, c.Packages, 3)

	// Sorted by score, deprecated package last with a zero score.
	assert.Equal(t, c.Packages[0].Name, c.Recommendation)
	assert.Equal(t, "request", c.Packages[2].Name)
	assert.Zero(t, c.Packages[2].Score)

	assert.Equal(t, "ky", c.SmallestBundle)
	assert.Equal(t, "axios", c.MostPopular)
	assert.False(t, c.UpdatedAt.IsZero())
}

// TestGenerateComparisonPartialFailure verifies one bad fetch does not
// sink the rest.
func TestGenerateComparisonPartialFailure(t *testing.T) {
	group := schema.AlternativeGroup{
		Category: "http-client",
		Packages: []string{"axios", "ky", "no-such-pkg"},
	}

	c := GenerateComparison(context.Background(), group, comparisonFetcher())
	require.NotNil(t, c)
	assert.Len(t, c.Packages, 2)
	for _, p := range c.Packages {
		assert.NotEqual(t, "no-such-pkg", p.Name)
	}
}

// TestGenerateComparisonTooFewResults verifies the two-package floor.
func TestGenerateComparisonTooFewResults(t *testing.T) {
	fetcher := comparisonFetcher()

	t.Run("one success", func(t *testing.T) {
		group := schema.AlternativeGroup{Packages: []string{"axios", "gone", "also-gone"}}
		assert.Nil(t, GenerateComparison(context.Background(), group, fetcher))
	})

	t.Run("zero successes", func(t *testing.T) {
		group := schema.AlternativeGroup{Packages: []string{"gone", "also-gone"}}
		assert.Nil(t, GenerateComparison(context.Background(), group, fetcher))
	})
}

// TestCompareSpecificPackages covers the ad-hoc comparison path.
func TestCompareSpecificPackages(t *testing.T) {
	t.Run("needs at least two names", func(t *testing.T) {
		assert.Nil(t, CompareSpecificPackages(context.Background(), []string{"axios"}, comparisonFetcher()))
		assert.Nil(t, CompareSpecificPackages(context.Background(), nil, comparisonFetcher()))
	})

	t.Run("labeled as custom", func(t *testing.T) {
		c := CompareSpecificPackages(context.Background(), []string{"axios", "ky"}, comparisonFetcher())
		require.NotNil(t, c)
		assert.Equal(t, "custom", c.Category)
		assert.Equal(t, "Custom Comparison", c.CategoryName)
		assert.Len(t, c.Packages, 2)
	})
}
