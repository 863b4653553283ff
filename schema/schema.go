// Package schema has configs, models and constants for all parts of pkgpulse.
package schema

import "time"

// PackageMetrics is the canonical measurement snapshot for a single npm
// package. It is assembled from registry, download, GitHub, bundle and
// vulnerability data by the fetch layer and treated as an immutable input
// by the scoring core.
type PackageMetrics struct {
	Name             string        `json:"name"`              // Package name on the npm registry
	WeeklyDownloads  int           `json:"weekly_downloads"`  // Downloads over the most recent week
	DownloadTrend    DownloadTrend `json:"download_trend"`    // growing, stable or declining
	DownloadVelocity float64       `json:"download_velocity"` // Percent change of recent vs prior download volume
	BundleSize       int           `json:"bundle_size"`       // Minified+gzip size in bytes
	BundleSizeRaw    int           `json:"bundle_size_raw"`   // Minified size in bytes
	TreeShakeable    bool          `json:"tree_shakeable"`    // Whether the module has side-effect-free exports
	LastCommitDays   int           `json:"last_commit_days"`  // Days since the last commit on the default branch
	RecentCommits    int           `json:"recent_commits"`    // Commits within the last six months
	RecentReleases   int           `json:"recent_releases"`   // Published releases within the last six months
	Stars            int           `json:"stars"`             // GitHub stargazer count
	OpenIssues       int           `json:"open_issues"`       // GitHub open issue count
	Contributors     int           `json:"contributors"`      // GitHub contributor count
	HasTypes         bool          `json:"has_types"`         // Ships TypeScript type definitions
	IsESM            bool          `json:"is_esm"`            // Ships an ES module build
	SecurityIssues   int           `json:"security_issues"`   // Known vulnerabilities from OSV
	Deprecated       bool          `json:"deprecated"`        // Marked deprecated on the registry
	Keywords         []string      `json:"keywords"`          // Free-text keywords from package.json
	UpdatedAt        time.Time     `json:"updated_at"`        // When this snapshot was assembled
}

// ScoredPackage pairs a package's metrics with its composite score and
// descriptive badges. Recomputed on every comparison request; never
// persisted as a source of truth.
type ScoredPackage struct {
	Name    string         `json:"name"`
	Score   int            `json:"score"` // Composite score in [0,100]
	Metrics PackageMetrics `json:"metrics"`
	Badges  []string       `json:"badges"`
}

// CorpusPackage is the minimal package shape needed by alternative
// discovery: a name, its keywords, and its weekly download volume.
type CorpusPackage struct {
	Name            string   `json:"name"`
	Keywords        []string `json:"keywords"`
	WeeklyDownloads int      `json:"weekly_downloads"`
}
