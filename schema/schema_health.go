package schema

import "time"

// RepoSignals is the raw GitHub slice of a package's health inputs,
// pre-fetched by the caller.
type RepoSignals struct {
	LastCommit     time.Time `json:"last_commit"`
	OpenIssues     int       `json:"open_issues"`
	OpenPRs        int       `json:"open_prs"`
	Stars          int       `json:"stars"`
	Contributors   int       `json:"contributors"`
	RecentCommits  int       `json:"recent_commits"`
	RecentReleases int       `json:"recent_releases"`
}

// WeeklySample is one week of download counts, oldest first in a series.
type WeeklySample struct {
	Week      time.Time `json:"week"`
	Downloads int       `json:"downloads"`
}

// HealthSignals is the aggregated-input value object for health scoring.
// Every field is optional: a nil pointer means the source data was absent
// and the corresponding weighted term must be skipped, not zeroed. That
// optionality is load-bearing for the weight renormalization in
// CalculateHealthScore.
type HealthSignals struct {
	LastCommit         *time.Time          `json:"last_commit,omitempty"`
	OpenIssues         *int                `json:"open_issues,omitempty"`
	OpenPRs            *int                `json:"open_prs,omitempty"`
	DownloadTrend      *DownloadTrend      `json:"download_trend,omitempty"`
	WeeklyDownloads    *int                `json:"weekly_downloads,omitempty"`
	DownloadChange     *float64            `json:"download_change,omitempty"` // Percent, only with enough history
	MaintainerActivity *MaintainerActivity `json:"maintainer_activity,omitempty"`
	RecentReleases     *int                `json:"recent_releases,omitempty"`
	Vulnerabilities    *int                `json:"vulnerabilities,omitempty"`
	Stars              *int                `json:"stars,omitempty"`
	Contributors       *int                `json:"contributors,omitempty"`
	Deprecated         bool                `json:"deprecated,omitempty"`
	DeprecatedMessage  string              `json:"deprecated_message,omitempty"`
}

// PackageHealth is the fully derived health assessment for one package.
// Regenerated whenever upstream signals are refreshed.
type PackageHealth struct {
	Name           string        `json:"name"`
	Score          int           `json:"score"` // In [0,100]; capped at 25 when deprecated
	Status         HealthStatus  `json:"status"`
	Signals        HealthSignals `json:"signals"`
	Recommendation string        `json:"recommendation,omitempty"`
	Alternatives   []string      `json:"alternatives,omitempty"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
