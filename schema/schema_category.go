package schema

import "time"

// CategoryDefinition is one entry of the static seed catalog. Loaded once
// at startup and immutable for the process lifetime.
type CategoryDefinition struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	// MinMatches is the minimum number of keyword hits required before
	// this category is considered a candidate match.
	MinMatches int `json:"min_matches"`
}

// DiscoveredCategory is a category produced by an external discovery job
// and persisted in a key-value store. Read-only from the core's view.
type DiscoveredCategory struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Keywords     []string  `json:"keywords"`
	Packages     []string  `json:"packages"`
	Confidence   float64   `json:"confidence"` // In [0,1]
	DiscoveredAt time.Time `json:"discovered_at"`
	PackageCount int       `json:"package_count"`
}

// ExtendedCategory is a category definition tagged with its source, used
// when seed and discovered catalogs are merged at query time.
type ExtendedCategory struct {
	CategoryDefinition
	Source CategorySource `json:"source"`
}

// AlternativeGroup is one candidate "these packages compete" grouping.
type AlternativeGroup struct {
	Category     string          `json:"category"`
	CategoryName string          `json:"category_name"`
	Packages     []string        `json:"packages"`
	Confidence   float64         `json:"confidence"`
	DiscoveredVia DiscoverySource `json:"discovered_via"`
}
