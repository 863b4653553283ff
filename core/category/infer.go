package category

import (
	"context"
	"strings"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// seedBonus breaks score ties between seed and discovered categories in
// favor of the curated catalog.
const seedBonus = 0.001

// candidate is one eligible category with its inference score.
type candidate struct {
	id    string
	score float64
}

// Infer maps a package's free-text keyword list to the best-fit seed
// category id. Returns "" when no category qualifies.
func Infer(keywords []string) string {
	best := bestCandidate(keywords, nil)
	return best.id
}

// InferWithStore runs inference over the union of seed and discovered
// categories. Seed categories receive a fixed score bonus so they always
// win ties with a discovered category of the same strength. Store
// failures degrade to seed-only inference.
func InferWithStore(ctx context.Context, keywords []string, store contract.KVStore) string {
	best := bestCandidate(keywords, readDiscovered(ctx, store))
	return best.id
}

// bestCandidate scores every eligible category and returns the winner.
// Seed ids are evaluated in sorted order and discovered ids after them,
// so the result is deterministic for equal scores.
func bestCandidate(keywords []string, discovered []schema.DiscoveredCategory) candidate {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	if len(lowered) == 0 {
		return candidate{}
	}

	var best candidate
	catalog := seedCatalog()
	for _, id := range seedIDs {
		def := catalog[id]
		if score, ok := scoreCategory(lowered, def); ok {
			score += seedBonus
			if score > best.score {
				best = candidate{id: def.ID, score: score}
			}
		}
	}

	for _, disc := range discovered {
		if _, taken := catalog[disc.ID]; taken {
			continue
		}
		def := schema.CategoryDefinition{
			ID:         disc.ID,
			Keywords:   disc.Keywords,
			MinMatches: discoveredMinMatches,
		}
		if score, ok := scoreCategory(lowered, def); ok {
			if score > best.score {
				best = candidate{id: def.ID, score: score}
			}
		}
	}
	return best
}

// scoreCategory counts fuzzy keyword hits against one category. A hit is
// an exact match, a category keyword contained in an input keyword, or an
// input keyword contained in a category keyword: the bidirectional
// containment lets "test" match "testing" and vice versa. The score is
// the fraction of the category's own keyword set that matched, which
// favors small precise categories over large generic ones.
func scoreCategory(inputs []string, def schema.CategoryDefinition) (float64, bool) {
	if len(def.Keywords) == 0 {
		return 0, false
	}
	hits := 0
	for _, catKW := range def.Keywords {
		catKW = strings.ToLower(catKW)
		for _, input := range inputs {
			if input == catKW || strings.Contains(input, catKW) || strings.Contains(catKW, input) {
				hits++
				break
			}
		}
	}
	if hits < def.MinMatches {
		return 0, false
	}
	return float64(hits) / float64(len(def.Keywords)), true
}
