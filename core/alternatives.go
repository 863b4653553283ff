package core

import (
	"sort"

	"github.com/pkgpulse/pkgpulse/core/category"
	"github.com/pkgpulse/pkgpulse/schema"
)

// DiscoverOptions bound the grouping performed by DiscoverAlternatives.
type DiscoverOptions struct {
	MinDownloads int // Packages below this weekly volume are ignored
	MinGroupSize int // Buckets smaller than this are dropped
	MaxGroupSize int // Buckets are truncated to this many packages
}

// DefaultDiscoverOptions returns the standard discovery bounds.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		MinDownloads: 1000,
		MinGroupSize: 2,
		MaxGroupSize: 20,
	}
}

// DiscoverAlternatives groups a corpus of packages into alternative sets
// by inferred category. Buckets are truncated in encounter order; no
// selection priority is applied within a bucket. Output is sorted by
// bucket size descending, bigger groups being presumed more useful for
// comparison, with category id as the deterministic tie-break.
func DiscoverAlternatives(corpus []schema.CorpusPackage, opts DiscoverOptions) []schema.AlternativeGroup {
	buckets := make(map[string][]string)
	for _, pkg := range corpus {
		if pkg.WeeklyDownloads < opts.MinDownloads {
			continue
		}
		catID := category.Infer(pkg.Keywords)
		if catID == "" {
			continue
		}
		if len(buckets[catID]) < opts.MaxGroupSize {
			buckets[catID] = append(buckets[catID], pkg.Name)
		}
	}

	groups := make([]schema.AlternativeGroup, 0, len(buckets))
	for catID, names := range buckets {
		if len(names) < opts.MinGroupSize {
			continue
		}
		groups = append(groups, schema.AlternativeGroup{
			Category:      catID,
			CategoryName:  category.Name(catID),
			Packages:      names,
			Confidence:    groupConfidence(len(names)),
			DiscoveredVia: schema.DiscoveredViaKeywords,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Packages) != len(groups[j].Packages) {
			return len(groups[i].Packages) > len(groups[j].Packages)
		}
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// groupConfidence estimates how trustworthy a keyword-derived group is.
// Larger buckets carry more evidence that the category is real.
func groupConfidence(size int) float64 {
	if size > 5 {
		return 1.0
	}
	return 0.8
}

// FindAlternativesForPackage collects corpus packages that share the
// target package's inferred category. The target name always leads the
// result's package list, followed by up to limit-1 alternatives in
// corpus order. Returns nil when the target's category cannot be
// inferred.
func FindAlternativesForPackage(name string, keywords []string, corpus []schema.CorpusPackage, limit int) *schema.AlternativeGroup {
	catID := category.Infer(keywords)
	if catID == "" {
		return nil
	}

	var alternatives []string
	for _, pkg := range corpus {
		if pkg.Name == name || pkg.WeeklyDownloads < 1000 {
			continue
		}
		if category.Infer(pkg.Keywords) == catID {
			alternatives = append(alternatives, pkg.Name)
		}
	}

	confidence := 0.7
	if len(alternatives) > 3 {
		confidence = 1.0
	}

	if limit > 0 && len(alternatives) > limit-1 {
		alternatives = alternatives[:limit-1]
	}

	return &schema.AlternativeGroup{
		Category:      catID,
		CategoryName:  category.Name(catID),
		Packages:      append([]string{name}, alternatives...),
		Confidence:    confidence,
		DiscoveredVia: schema.DiscoveredViaKeywords,
	}
}

// MergeWithManualGroups overlays manually curated groups onto discovered
// ones. For a category present in both, the package sets are unioned
// with the manual entries first, capped at the standard group size, and
// the group is marked manual with full confidence. Categories only in
// the manual set are added fresh.
func MergeWithManualGroups(discovered []schema.AlternativeGroup, manual map[string][]string) []schema.AlternativeGroup {
	merged := make([]schema.AlternativeGroup, 0, len(discovered))
	used := make(map[string]bool, len(manual))

	for _, group := range discovered {
		manualPkgs, ok := manual[group.Category]
		if !ok {
			merged = append(merged, group)
			continue
		}
		used[group.Category] = true
		merged = append(merged, schema.AlternativeGroup{
			Category:      group.Category,
			CategoryName:  group.CategoryName,
			Packages:      unionCapped(manualPkgs, group.Packages, 20),
			Confidence:    1.0,
			DiscoveredVia: schema.DiscoveredViaManual,
		})
	}

	// Manual-only categories, in sorted order for determinism.
	remaining := make([]string, 0, len(manual))
	for catID := range manual {
		if !used[catID] {
			remaining = append(remaining, catID)
		}
	}
	sort.Strings(remaining)
	for _, catID := range remaining {
		merged = append(merged, schema.AlternativeGroup{
			Category:      catID,
			CategoryName:  category.Name(catID),
			Packages:      unionCapped(manual[catID], nil, 20),
			Confidence:    1.0,
			DiscoveredVia: schema.DiscoveredViaManual,
		})
	}
	return merged
}

// unionCapped merges two package lists preserving order of first
// appearance, deduplicated, capped at limit.
func unionCapped(first, second []string, limit int) []string {
	seen := make(map[string]bool, len(first)+len(second))
	var result []string
	for _, name := range append(append([]string{}, first...), second...) {
		if seen[name] || len(result) >= limit {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}
