package category

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/pkgpulse/pkgpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGet covers seed catalog lookup.
func TestGet(t *testing.T) {
	def, ok := Get("http-client")
	require.True(t, ok)
	assert.Equal(t, "HTTP Clients", def.Name)
	assert.NotEmpty(t, def.Keywords)
	assert.GreaterOrEqual(t, def.MinMatches, 1)

	_, ok = Get("no-such-category")
	assert.False(t, ok)
}

// TestName verifies the raw-id fallback for unknown categories.
func TestName(t *testing.T) {
	assert.Equal(t, "Date & Time", Name("date-time"))
	assert.Equal(t, "some-discovered-id", Name("some-discovered-id"))
}

// TestAllIDs verifies ordering and isolation of the returned slice.
func TestAllIDs(t *testing.T) {
	ids := AllIDs()
	require.NotEmpty(t, ids)
	assert.True(t, sort.StringsAreSorted(ids))

	ids[0] = "mutated"
	assert.NotEqual(t, "mutated", AllIDs()[0])
}

// TestAll covers the seed and discovered union.
func TestAll(t *testing.T) {
	ctx := context.Background()

	t.Run("nil store yields seeds only", func(t *testing.T) {
		all := All(ctx, nil)
		assert.Len(t, all, len(AllIDs()))
		for _, cat := range all {
			assert.Equal(t, schema.SourceSeed, cat.Source)
		}
	})

	t.Run("store failure yields seeds only", func(t *testing.T) {
		all := All(ctx, &stubKV{err: errors.New("connection refused")})
		assert.Len(t, all, len(AllIDs()))
	})

	t.Run("discovered categories appended", func(t *testing.T) {
		store := &stubKV{fields: map[string]string{
			"static-site": discoveredField(t, schema.DiscoveredCategory{
				ID:       "static-site",
				Name:     "Static Site Generators",
				Keywords: []string{"ssg", "static-site", "jamstack"},
			}),
		}}
		all := All(ctx, store)
		require.Len(t, all, len(AllIDs())+1)

		last := all[len(all)-1]
		assert.Equal(t, "static-site", last.ID)
		assert.Equal(t, schema.SourceDiscovered, last.Source)
		assert.Equal(t, discoveredMinMatches, last.MinMatches)
	})

	t.Run("seed wins an id collision", func(t *testing.T) {
		store := &stubKV{fields: map[string]string{
			"testing": discoveredField(t, schema.DiscoveredCategory{
				ID:       "testing",
				Name:     "Shadowed",
				Keywords: []string{"rigged"},
			}),
		}}
		all := All(ctx, store)
		assert.Len(t, all, len(AllIDs()))
		for _, cat := range all {
			if cat.ID == "testing" {
				assert.Equal(t, "Testing", cat.Name)
				assert.Equal(t, schema.SourceSeed, cat.Source)
			}
		}
	})

	t.Run("undecodable records skipped", func(t *testing.T) {
		store := &stubKV{fields: map[string]string{
			"broken": "not json",
			"fine": discoveredField(t, schema.DiscoveredCategory{
				Name:     "Fine",
				Keywords: []string{"fine", "ok"},
			}),
		}}
		all := All(ctx, store)
		require.Len(t, all, len(AllIDs())+1)
		// The record id falls back to the hash field name.
		assert.Equal(t, "fine", all[len(all)-1].ID)
	})
}
