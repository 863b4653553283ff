package core

import "github.com/pkgpulse/pkgpulse/schema"

// Badge thresholds.
const (
	tinyBundleBytes   = 5_000
	smallBundleBytes  = 15_000
	largeBundleBytes  = 100_000
	inactiveAfterDays = 180
	activeWithinDays  = 14
	veryPopularWeekly = 10_000_000
)

// GenerateBadges derives the descriptive badges for a package, in a
// fixed order. A deprecated package gets only the Deprecated badge.
// The bundle-size brackets and the active/inactive brackets are each
// mutually exclusive; the 15-100kb and 14-180 day middle bands get no
// badge at all.
func GenerateBadges(m schema.PackageMetrics) []string {
	if m.Deprecated {
		return []string{schema.BadgeDeprecated}
	}

	var badges []string
	if m.HasTypes {
		badges = append(badges, schema.BadgeTypeScript)
	}
	if m.IsESM {
		badges = append(badges, schema.BadgeESM)
	}
	if m.TreeShakeable {
		badges = append(badges, schema.BadgeTreeShakeable)
	}

	switch m.DownloadTrend {
	case schema.TrendGrowing:
		badges = append(badges, schema.BadgeTrendingUp)
	case schema.TrendDeclining:
		badges = append(badges, schema.BadgeDeclining)
	}

	switch {
	case m.BundleSize < tinyBundleBytes:
		badges = append(badges, schema.BadgeTinyBundle)
	case m.BundleSize < smallBundleBytes:
		badges = append(badges, schema.BadgeSmallBundle)
	case m.BundleSize > largeBundleBytes:
		badges = append(badges, schema.BadgeLargeBundle)
	}

	if m.SecurityIssues > 0 {
		badges = append(badges, schema.BadgeSecurityIssues)
	}

	switch {
	case m.LastCommitDays > inactiveAfterDays:
		badges = append(badges, schema.BadgeInactive)
	case m.LastCommitDays < activeWithinDays:
		badges = append(badges, schema.BadgeActive)
	}

	if m.WeeklyDownloads > veryPopularWeekly {
		badges = append(badges, schema.BadgeVeryPopular)
	}

	return badges
}
