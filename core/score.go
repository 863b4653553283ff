// Package core has the scoring, ranking, comparison and health logic for
// npm packages.
package core

import (
	"math"

	"github.com/pkgpulse/pkgpulse/schema"
)

// Saturation bounds to normalize raw metrics. Values beyond a bound
// saturate at 1.0. These constants are part of the scoring contract:
// changing them changes every score.
const (
	maxDownloads  = 50_000_000.0 // weekly downloads beyond this saturate
	maxBundleSize = 200_000.0    // gzip bytes; smaller is better
	maxCommitAge  = 365.0        // days since last commit; recent is better
	maxStars      = 50_000.0     // stargazers beyond this saturate
	maxActivity   = 100.0        // commits + 5*releases over six months
)

// Weighted base terms. They sum to 0.75: the remaining headroom is
// earned only through the trend and quality adjustments below, so a
// package needs those signals to reach a high score.
const (
	weightDownloads = 0.15
	weightBundle    = 0.20
	weightRecency   = 0.20
	weightStars     = 0.10
	weightActivity  = 0.10
)

// Score adjustments.
const (
	trendGrowingBonus    = 0.08
	trendDecliningMalus  = -0.12
	securityPenalty      = -0.15 // flat, not scaled by count
	typesBonus           = 0.08
	esmBonus             = 0.04
	treeShakeableBonus   = 0.05
)

// ScorePackage calculates a package's composite score (0-100) from its
// metrics snapshot. Deprecated packages score exactly 0.
func ScorePackage(m schema.PackageMetrics) int {
	if m.Deprecated {
		return 0
	}

	nDownloads := clamp01(float64(m.WeeklyDownloads) / maxDownloads)
	nBundleInv := clamp01(1.0 - float64(m.BundleSize)/maxBundleSize)
	nRecencyInv := clamp01(1.0 - float64(m.LastCommitDays)/maxCommitAge)
	nStars := clamp01(float64(m.Stars) / maxStars)
	nActivity := clamp01(float64(m.RecentCommits+m.RecentReleases*5) / maxActivity)

	raw := nDownloads*weightDownloads +
		nBundleInv*weightBundle +
		nRecencyInv*weightRecency +
		nStars*weightStars +
		nActivity*weightActivity

	switch m.DownloadTrend {
	case schema.TrendGrowing:
		raw += trendGrowingBonus
	case schema.TrendDeclining:
		raw += trendDecliningMalus
	}

	if m.SecurityIssues > 0 {
		raw += securityPenalty
	}
	if m.HasTypes {
		raw += typesBonus
	}
	if m.IsESM {
		raw += esmBonus
	}
	if m.TreeShakeable {
		raw += treeShakeableBonus
	}

	return int(math.Round(clamp01(raw) * 100.0))
}

// clamp01 clamps v to the [0,1] interval.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
