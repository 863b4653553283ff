package core

import (
	"fmt"

	"github.com/pkgpulse/pkgpulse/schema"
)

// ExplainScore produces human-readable reasons behind a package's score,
// positive contributions first, then negative ones. Purely descriptive:
// the strings mirror the scoring thresholds but are never used for
// ranking.
func ExplainScore(m schema.PackageMetrics) []string {
	if m.Deprecated {
		return []string{"Package is deprecated, so it scores zero"}
	}

	var positive, negative []string

	if m.WeeklyDownloads > veryPopularWeekly {
		positive = append(positive, fmt.Sprintf("Very widely used at %s downloads per week", formatCount(m.WeeklyDownloads)))
	} else if m.WeeklyDownloads >= 1_000_000 {
		positive = append(positive, fmt.Sprintf("Widely used at %s downloads per week", formatCount(m.WeeklyDownloads)))
	}
	if m.DownloadTrend == schema.TrendGrowing {
		positive = append(positive, "Download volume is growing")
	}
	if m.BundleSize > 0 && m.BundleSize < smallBundleBytes {
		positive = append(positive, fmt.Sprintf("Small footprint at %.1fkb gzipped", float64(m.BundleSize)/1000.0))
	}
	if m.LastCommitDays < activeWithinDays {
		positive = append(positive, "Actively maintained with commits in the last two weeks")
	}
	if m.HasTypes {
		positive = append(positive, "Ships TypeScript type definitions")
	}
	if m.IsESM {
		positive = append(positive, "Ships a native ES module build")
	}
	if m.TreeShakeable {
		positive = append(positive, "Supports tree shaking")
	}
	if m.Stars >= 10_000 {
		positive = append(positive, fmt.Sprintf("Strong community with %s GitHub stars", formatCount(m.Stars)))
	}

	if m.DownloadTrend == schema.TrendDeclining {
		negative = append(negative, "Download volume is declining")
	}
	if m.BundleSize > largeBundleBytes {
		negative = append(negative, fmt.Sprintf("Heavy footprint at %.0fkb gzipped", float64(m.BundleSize)/1000.0))
	}
	if m.LastCommitDays > inactiveAfterDays {
		negative = append(negative, fmt.Sprintf("No commits in %d days", m.LastCommitDays))
	}
	if m.SecurityIssues > 0 {
		negative = append(negative, fmt.Sprintf("Has %d known security issues", m.SecurityIssues))
	}
	if !m.HasTypes {
		negative = append(negative, "No TypeScript type definitions")
	}

	return append(positive, negative...)
}

// formatCount renders large counts compactly, e.g. 45.2M or 13.5k.
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000.0)
	default:
		return fmt.Sprintf("%d", n)
	}
}
