// Package category holds the seed category catalog and keyword-based
// category inference for npm packages.
package category

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// DiscoveredHashKey is the key under which the external discovery job
// persists DiscoveredCategory records, one JSON value per field.
const DiscoveredHashKey = "pkgpulse:categories:discovered"

// discoveredMinMatches is the hit threshold applied to discovered
// categories, which have no curated threshold of their own.
const discoveredMinMatches = 2

var (
	seedByID map[string]schema.CategoryDefinition
	seedIDs  []string
	seedOnce sync.Once
)

// seedCatalog returns the process-wide immutable seed catalog, built once
// on first use.
func seedCatalog() map[string]schema.CategoryDefinition {
	seedOnce.Do(func() {
		defs := seedDefinitions()
		seedByID = make(map[string]schema.CategoryDefinition, len(defs))
		seedIDs = make([]string, 0, len(defs))
		for _, def := range defs {
			seedByID[def.ID] = def
			seedIDs = append(seedIDs, def.ID)
		}
		sort.Strings(seedIDs)
	})
	return seedByID
}

// Get returns the seed category definition for an id, or false when the
// id is unknown.
func Get(id string) (schema.CategoryDefinition, bool) {
	def, ok := seedCatalog()[id]
	return def, ok
}

// Name returns the display name for a category id, falling back to the
// raw id when the catalog does not know it.
func Name(id string) string {
	if def, ok := seedCatalog()[id]; ok {
		return def.Name
	}
	return id
}

// AllIDs returns the ids of every seed category in sorted order.
func AllIDs() []string {
	seedCatalog()
	ids := make([]string, len(seedIDs))
	copy(ids, seedIDs)
	return ids
}

// All unions the seed catalog with discovered categories read from the
// external store. Seed categories always take precedence on an id
// collision. Store failures degrade to seed-only; they never propagate.
func All(ctx context.Context, store contract.KVStore) []schema.ExtendedCategory {
	catalog := seedCatalog()
	result := make([]schema.ExtendedCategory, 0, len(seedIDs))
	for _, id := range seedIDs {
		result = append(result, schema.ExtendedCategory{
			CategoryDefinition: catalog[id],
			Source:             schema.SourceSeed,
		})
	}

	for _, disc := range readDiscovered(ctx, store) {
		if _, taken := catalog[disc.ID]; taken {
			continue
		}
		result = append(result, schema.ExtendedCategory{
			CategoryDefinition: schema.CategoryDefinition{
				ID:         disc.ID,
				Name:       disc.Name,
				Keywords:   disc.Keywords,
				MinMatches: discoveredMinMatches,
			},
			Source: schema.SourceDiscovered,
		})
	}
	return result
}

// readDiscovered loads discovered categories from the store, skipping
// records that fail to decode. A nil store or a read error yields an
// empty slice.
func readDiscovered(ctx context.Context, store contract.KVStore) []schema.DiscoveredCategory {
	if store == nil {
		return nil
	}
	fields, err := store.HGetAll(ctx, DiscoveredHashKey)
	if err != nil {
		return nil
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	discovered := make([]schema.DiscoveredCategory, 0, len(ids))
	for _, id := range ids {
		var disc schema.DiscoveredCategory
		if err := json.Unmarshal([]byte(fields[id]), &disc); err != nil {
			continue
		}
		if disc.ID == "" {
			disc.ID = id
		}
		discovered = append(discovered, disc)
	}
	return discovered
}
