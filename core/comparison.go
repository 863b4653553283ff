package core

import (
	"context"
	"sync"
	"time"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// GenerateComparison fetches metrics for every package in the group
// concurrently, ranks them, and derives the headline picks. A fetch
// failing for one package never aborts the others; failed fetches are
// dropped from the result. Returns nil when fewer than two packages
// could be measured. Stateless and safe to call repeatedly; any caching
// belongs to the caller.
func GenerateComparison(ctx context.Context, group schema.AlternativeGroup, fetcher contract.MetricsFetcher) *schema.GeneratedComparison {
	results := make([]*schema.PackageMetrics, len(group.Packages))

	var wg sync.WaitGroup
	for i, name := range group.Packages {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			m, err := fetcher.FetchMetrics(ctx, name)
			if err != nil {
				return
			}
			results[i] = m
		}(i, name)
	}
	wg.Wait()

	fetched := make([]schema.PackageMetrics, 0, len(results))
	for _, m := range results {
		if m != nil {
			fetched = append(fetched, *m)
		}
	}
	if len(fetched) < 2 {
		return nil
	}

	ranked := RankPackages(fetched)

	smallest := ranked[0]
	popular := ranked[0]
	for _, p := range ranked[1:] {
		if p.Metrics.BundleSize < smallest.Metrics.BundleSize {
			smallest = p
		}
		if p.Metrics.WeeklyDownloads > popular.Metrics.WeeklyDownloads {
			popular = p
		}
	}

	return &schema.GeneratedComparison{
		Category:       group.Category,
		CategoryName:   group.CategoryName,
		Packages:       ranked,
		Recommendation: ranked[0].Name,
		SmallestBundle: smallest.Name,
		MostPopular:    popular.Name,
		UpdatedAt:      time.Now().UTC(),
	}
}

// CompareSpecificPackages builds an ad-hoc group for an explicit list of
// package names and delegates to GenerateComparison. Returns nil without
// fetching anything when fewer than two names are given.
func CompareSpecificPackages(ctx context.Context, names []string, fetcher contract.MetricsFetcher) *schema.GeneratedComparison {
	if len(names) < 2 {
		return nil
	}
	group := schema.AlternativeGroup{
		Category:      "custom",
		CategoryName:  "Custom Comparison",
		Packages:      names,
		Confidence:    1.0,
		DiscoveredVia: schema.DiscoveredViaManual,
	}
	return GenerateComparison(ctx, group, fetcher)
}
