package schema

import "time"

// GeneratedComparison is a fully derived comparison of an alternative
// group, ranked descending by score. Recomputed per request; callers may
// cache it with a TTL but it is never authoritative.
type GeneratedComparison struct {
	Category       string          `json:"category"`
	CategoryName   string          `json:"category_name"`
	Packages       []ScoredPackage `json:"packages"`        // Ranked descending by score
	Recommendation string          `json:"recommendation"`  // Top-ranked package name
	SmallestBundle string          `json:"smallest_bundle"` // Name with minimum gzip bundle size
	MostPopular    string          `json:"most_popular"`    // Name with maximum weekly downloads
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ComparisonResponse is the plain JSON-friendly shape served to HTTP and
// MCP callers.
type ComparisonResponse struct {
	Category       string                  `json:"category"`
	CategoryName   string                  `json:"categoryName"`
	Packages       []ComparisonPackageInfo `json:"packages"`
	Recommendation string                  `json:"recommendation"`
	SmallestBundle string                  `json:"smallestBundle"`
	MostPopular    string                  `json:"mostPopular"`
	UpdatedAt      string                  `json:"updatedAt"`
}

// ComparisonPackageInfo is the per-package slice of a ComparisonResponse.
type ComparisonPackageInfo struct {
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	Badges          []string `json:"badges"`
	WeeklyDownloads int      `json:"weeklyDownloads"`
	BundleSize      int      `json:"bundleSize"`
	LastCommitDays  int      `json:"lastCommitDays"`
	Stars           int      `json:"stars"`
	HasTypes        bool     `json:"hasTypes"`
	IsESM           bool     `json:"isEsm"`
	Deprecated      bool     `json:"deprecated"`
}

// BuildComparisonResponse maps a GeneratedComparison to its API shape.
// Pure serialization; no field enumerated on the inputs is dropped that
// callers depend on.
func BuildComparisonResponse(c *GeneratedComparison) *ComparisonResponse {
	if c == nil {
		return nil
	}
	packages := make([]ComparisonPackageInfo, 0, len(c.Packages))
	for _, p := range c.Packages {
		packages = append(packages, ComparisonPackageInfo{
			Name:            p.Name,
			Score:           p.Score,
			Badges:          p.Badges,
			WeeklyDownloads: p.Metrics.WeeklyDownloads,
			BundleSize:      p.Metrics.BundleSize,
			LastCommitDays:  p.Metrics.LastCommitDays,
			Stars:           p.Metrics.Stars,
			HasTypes:        p.Metrics.HasTypes,
			IsESM:           p.Metrics.IsESM,
			Deprecated:      p.Metrics.Deprecated,
		})
	}
	return &ComparisonResponse{
		Category:       c.Category,
		CategoryName:   c.CategoryName,
		Packages:       packages,
		Recommendation: c.Recommendation,
		SmallestBundle: c.SmallestBundle,
		MostPopular:    c.MostPopular,
		UpdatedAt:      c.UpdatedAt.Format(time.RFC3339),
	}
}
