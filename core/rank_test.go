package core

import (
	"testing"

	"github.com/pkgpulse/pkgpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRankPackages verifies descending, deterministic ordering.
func TestRankPackages(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RankPackages(nil))
		assert.Empty(t, RankPackages([]schema.PackageMetrics{}))
	})

	t.Run("sorted descending", func(t *testing.T) {
		metrics := []schema.PackageMetrics{
			{Name: "weak", BundleSize: 200_000, LastCommitDays: 365, DownloadTrend: schema.TrendStable},
			{Name: "strong", WeeklyDownloads: 40_000_000, BundleSize: 5_000, LastCommitDays: 3, Stars: 40_000, RecentCommits: 80, DownloadTrend: schema.TrendGrowing, HasTypes: true},
			{Name: "medium", WeeklyDownloads: 5_000_000, BundleSize: 30_000, LastCommitDays: 40, Stars: 10_000, DownloadTrend: schema.TrendStable},
		}

		ranked := RankPackages(metrics)
		require.Len(t, ranked, 3)
		assert.Equal(t, "strong", ranked[0].Name)
		assert.Equal(t, "medium", ranked[1].Name)
		assert.Equal(t, "weak", ranked[2].Name)
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
		}
	})

	t.Run("ties preserve input order", func(t *testing.T) {
		twin := schema.PackageMetrics{
			WeeklyDownloads: 1_000_000,
			BundleSize:      20_000,
			LastCommitDays:  30,
			DownloadTrend:   schema.TrendStable,
		}
		first := twin
		first.Name = "first"
		second := twin
		second.Name = "second"

		ranked := RankPackages([]schema.PackageMetrics{first, second})
		require.Len(t, ranked, 2)
		assert.Equal(t, ranked[0].Score, ranked[1].Score)
		assert.Equal(t, "first", ranked[0].Name)
		assert.Equal(t, "second", ranked[1].Name)
	})

	t.Run("badges attached", func(t *testing.T) {
		ranked := RankPackages([]schema.PackageMetrics{
			{Name: "typed", HasTypes: true, BundleSize: 50_000, LastCommitDays: 60},
		})
		require.Len(t, ranked, 1)
		assert.Contains(t, ranked[0].Badges, schema.BadgeTypeScript)
	})
}
