package core

import (
	"sort"

	"github.com/pkgpulse/pkgpulse/schema"
)

// RankPackages scores and badges every package and returns them sorted
// by score in descending order. The sort is stable: packages with equal
// scores keep their input order, so ranking is deterministic.
func RankPackages(metrics []schema.PackageMetrics) []schema.ScoredPackage {
	scored := make([]schema.ScoredPackage, 0, len(metrics))
	for _, m := range metrics {
		scored = append(scored, schema.ScoredPackage{
			Name:    m.Name,
			Score:   ScorePackage(m),
			Metrics: m,
			Badges:  GenerateBadges(m),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
