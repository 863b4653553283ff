package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgpulse/pkgpulse/schema"
)

func sampleGroups() []schema.AlternativeGroup {
	return []schema.AlternativeGroup{
		{
			Category:      "http-client",
			CategoryName:  "HTTP Clients",
			Packages:      []string{"axios", "got", "ky", "node-fetch", "superagent", "undici"},
			Confidence:    1.0,
			DiscoveredVia: schema.DiscoveredViaKeywords,
		},
		{
			Category:      "testing",
			CategoryName:  "Testing",
			Packages:      []string{"jest", "vitest"},
			Confidence:    0.8,
			DiscoveredVia: schema.DiscoveredViaKeywords,
		},
	}
}

func TestWriteAlternativesTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeAlternativesTable(&buf, sampleGroups())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "HTTP Clients")
	assert.Contains(t, out, "jest, vitest")
	assert.Contains(t, out, "Found 2 alternative groups")
}

func TestWriteAlternativesTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := writeAlternativesTable(&buf, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No alternative groups found.")
}

func TestWriteAlternativesCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeAlternativesCSV(&buf, sampleGroups())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "http-client", records[1][0])
	assert.Equal(t, "axios|got|ky|node-fetch|superagent|undici", records[1][2])
	assert.Equal(t, "6", records[1][3])
	assert.Equal(t, "1.00", records[1][4])
	assert.Equal(t, "keywords", records[1][5])
}
