package core

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkgpulse/pkgpulse/schema"
)

// Health signal group weights. Independent from the comparison scorer's
// weights: this formula grades absolute health, the scorer ranks
// candidates within a category. Do not unify them.
const (
	healthWeightActivity       = 0.30
	healthWeightResponsiveness = 0.20
	healthWeightTrend          = 0.20
	healthWeightSecurity       = 0.15
	healthWeightCommunity      = 0.15
)

// deprecatedScoreCap severely caps, but does not zero, the health score
// of a deprecated package. The comparison scorer's hard-zero policy is a
// different, intentional choice.
const deprecatedScoreCap = 25

// Maintainer activity thresholds over commits + 5*releases.
const (
	activityHighAt   = 50
	activityMediumAt = 20
	activityLowAt    = 5
)

// Download trend windows, in weekly samples.
const (
	trendRecentWeeks     = 4
	trendBaselineWeeks   = 8
	trendChangeMinWeeks  = 12
	trendThresholdPct    = 10.0
)

// BuildHealthSignals maps the available raw inputs into the optional-
// field signals object. A field whose source data is absent stays nil
// rather than defaulting to zero; CalculateHealthScore depends on that
// to renormalize over the signal groups actually present.
func BuildHealthSignals(repo *schema.RepoSignals, downloads []schema.WeeklySample, vulnerabilities *int, deprecated bool, deprecatedMessage string) schema.HealthSignals {
	signals := schema.HealthSignals{
		Deprecated:        deprecated,
		DeprecatedMessage: deprecatedMessage,
	}

	if repo != nil {
		signals.LastCommit = timePtr(repo.LastCommit)
		signals.OpenIssues = intPtr(repo.OpenIssues)
		signals.OpenPRs = intPtr(repo.OpenPRs)
		signals.Stars = intPtr(repo.Stars)
		signals.Contributors = intPtr(repo.Contributors)
		signals.RecentReleases = intPtr(repo.RecentReleases)

		activity := maintainerActivity(repo.RecentCommits, repo.RecentReleases)
		signals.MaintainerActivity = &activity
	}

	if len(downloads) > 0 {
		signals.WeeklyDownloads = intPtr(downloads[len(downloads)-1].Downloads)

		trend := DownloadTrendFromHistory(downloads)
		signals.DownloadTrend = &trend

		if len(downloads) >= trendChangeMinWeeks {
			change := downloadChangePct(downloads)
			signals.DownloadChange = &change
		}
	}

	signals.Vulnerabilities = vulnerabilities

	return signals
}

// maintainerActivity grades raw commit and release counts.
func maintainerActivity(recentCommits, recentReleases int) schema.MaintainerActivity {
	level := recentCommits + recentReleases*5
	switch {
	case level >= activityHighAt:
		return schema.ActivityHigh
	case level >= activityMediumAt:
		return schema.ActivityMedium
	case level >= activityLowAt:
		return schema.ActivityLow
	default:
		return schema.ActivityNone
	}
}

// DownloadTrendFromHistory classifies a weekly download series, oldest
// first. Fewer than four samples default to stable. The mean of the most
// recent four weeks is compared against the mean of the preceding eight:
// more than +10% is growing, less than -10% is declining.
func DownloadTrendFromHistory(samples []schema.WeeklySample) schema.DownloadTrend {
	if len(samples) < trendRecentWeeks {
		return schema.TrendStable
	}

	recent := samples[len(samples)-trendRecentWeeks:]
	baselineStart := len(samples) - trendRecentWeeks - trendBaselineWeeks
	if baselineStart < 0 {
		baselineStart = 0
	}
	baseline := samples[baselineStart : len(samples)-trendRecentWeeks]
	if len(baseline) == 0 {
		return schema.TrendStable
	}

	recentMean := weeklyMean(recent)
	baselineMean := weeklyMean(baseline)
	if baselineMean == 0 {
		return schema.TrendStable
	}

	changePct := (recentMean - baselineMean) / baselineMean * 100.0
	switch {
	case changePct > trendThresholdPct:
		return schema.TrendGrowing
	case changePct < -trendThresholdPct:
		return schema.TrendDeclining
	default:
		return schema.TrendStable
	}
}

// DownloadVelocityFromHistory returns the percent change of the recent
// download window against the preceding baseline. With fewer than
// twelve weekly samples there is no baseline worth trusting and the
// velocity is reported as zero.
func DownloadVelocityFromHistory(samples []schema.WeeklySample) float64 {
	if len(samples) < trendRecentWeeks+trendBaselineWeeks {
		return 0
	}
	return downloadChangePct(samples)
}

// downloadChangePct computes the percent change of the recent window
// against the baseline window. Only meaningful with at least twelve
// samples; callers gate on that.
func downloadChangePct(samples []schema.WeeklySample) float64 {
	recent := samples[len(samples)-trendRecentWeeks:]
	baseline := samples[len(samples)-trendRecentWeeks-trendBaselineWeeks : len(samples)-trendRecentWeeks]
	baselineMean := weeklyMean(baseline)
	if baselineMean == 0 {
		return 0
	}
	return (weeklyMean(recent) - baselineMean) / baselineMean * 100.0
}

func weeklyMean(samples []schema.WeeklySample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s.Downloads)
	}
	return sum / float64(len(samples))
}

// CalculateHealthScore merges whatever signal groups are present into a
// 0-100 score. Each group contributes its sub-score times its weight,
// and the sum is normalized by the weight actually used, so a package
// with only two of five groups still gets a fair score scaled to what is
// known. With no groups at all the score defaults to 50. A deprecated
// package's score is capped at 25 regardless of its other signals.
func CalculateHealthScore(signals schema.HealthSignals) int {
	var sum, weightUsed float64

	if signals.MaintainerActivity != nil {
		sum += activityScore(*signals.MaintainerActivity) * healthWeightActivity
		weightUsed += healthWeightActivity
	}

	if signals.RecentReleases != nil {
		sum += math.Min(float64(*signals.RecentReleases)*15.0, 100.0) * healthWeightResponsiveness
		weightUsed += healthWeightResponsiveness
	}

	if signals.DownloadTrend != nil {
		sum += trendScore(*signals.DownloadTrend) * healthWeightTrend
		weightUsed += healthWeightTrend
	}

	if signals.Vulnerabilities != nil {
		sum += securityScore(*signals.Vulnerabilities) * healthWeightSecurity
		weightUsed += healthWeightSecurity
	}

	if signals.Stars != nil || signals.Contributors != nil {
		sum += communityScore(signals.Stars, signals.Contributors) * healthWeightCommunity
		weightUsed += healthWeightCommunity
	}

	score := 50
	if weightUsed > 0 {
		score = int(math.Round(sum / weightUsed))
	}

	if signals.Deprecated && score > deprecatedScoreCap {
		score = deprecatedScoreCap
	}
	return score
}

func activityScore(activity schema.MaintainerActivity) float64 {
	switch activity {
	case schema.ActivityHigh:
		return 100
	case schema.ActivityMedium:
		return 70
	case schema.ActivityLow:
		return 40
	default:
		return 10
	}
}

func trendScore(trend schema.DownloadTrend) float64 {
	switch trend {
	case schema.TrendGrowing:
		return 100
	case schema.TrendDeclining:
		return 30
	default:
		return 70
	}
}

func securityScore(vulnerabilities int) float64 {
	if vulnerabilities == 0 {
		return 100
	}
	return math.Max(0, 100.0-float64(vulnerabilities)*25.0)
}

// communityScore is best-of stars and contributors, not an average: a
// package can earn community credit through either channel.
func communityScore(stars, contributors *int) float64 {
	var starScore, contribScore float64
	if stars != nil {
		starScore = math.Min(float64(*stars)/100.0, 100.0)
	}
	if contributors != nil {
		contribScore = math.Min(float64(*contributors)*5.0, 100.0)
	}
	return math.Max(starScore, contribScore)
}

// GetHealthStatus grades a health score. Deprecation overrides the
// numeric thresholds entirely.
func GetHealthStatus(score int, deprecated bool) schema.HealthStatus {
	if deprecated {
		return schema.StatusDeprecated
	}
	switch {
	case score >= 80:
		return schema.StatusHealthy
	case score >= 60:
		return schema.StatusStable
	case score >= 40:
		return schema.StatusMaintenance
	default:
		return schema.StatusAtRisk
	}
}

// BuildPackageHealth composes signals, score and status into the full
// assessment. A recommendation is generated only for statuses that
// warrant action; healthy and stable packages get none, and the
// alternatives list is attached only alongside a recommendation.
func BuildPackageHealth(name string, signals schema.HealthSignals, alternatives []string) schema.PackageHealth {
	score := CalculateHealthScore(signals)
	status := GetHealthStatus(score, signals.Deprecated)

	health := schema.PackageHealth{
		Name:      name,
		Score:     score,
		Status:    status,
		Signals:   signals,
		UpdatedAt: time.Now().UTC(),
	}

	switch status {
	case schema.StatusDeprecated:
		health.Recommendation = deprecatedRecommendation(name, signals.DeprecatedMessage, alternatives)
		health.Alternatives = alternatives
	case schema.StatusAtRisk:
		if len(alternatives) > 0 {
			health.Recommendation = fmt.Sprintf("%s shows risk signals; consider alternatives such as %s", name, strings.Join(capNames(alternatives, 3), ", "))
		} else {
			health.Recommendation = fmt.Sprintf("%s shows risk signals; review before adopting", name)
		}
		health.Alternatives = alternatives
	case schema.StatusMaintenance:
		health.Recommendation = fmt.Sprintf("%s appears to be in maintenance mode; it still works but expect slow responses to issues", name)
		health.Alternatives = alternatives
	}

	return health
}

// deprecatedRecommendation suggests the top alternatives when the
// package has been deprecated.
func deprecatedRecommendation(name, message string, alternatives []string) string {
	base := fmt.Sprintf("%s is deprecated", name)
	if message != "" {
		base = fmt.Sprintf("%s is deprecated: %s", name, message)
	}
	top := capNames(alternatives, 2)
	if len(top) == 0 {
		return base + ". Migrate away from it."
	}
	return fmt.Sprintf("%s. Consider migrating to %s.", base, strings.Join(top, " or "))
}

func capNames(names []string, limit int) []string {
	if len(names) > limit {
		return names[:limit]
	}
	return names
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
