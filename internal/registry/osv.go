package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// OSVClient queries the OSV vulnerability database.
type OSVClient struct {
	BaseURL string
	HTTP    *http.Client
}

// VulnerabilityCount returns the number of known OSV advisories for an
// npm package.
func (c *OSVClient) VulnerabilityCount(ctx context.Context, name string) (int, error) {
	body, err := json.Marshal(map[string]any{
		"package": map[string]string{
			"name":      name,
			"ecosystem": "npm",
		},
	})
	if err != nil {
		return 0, err
	}

	var resp struct {
		Vulns []struct {
			ID string `json:"id"`
		} `json:"vulns"`
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/v1/query"
	if err := postJSON(ctx, c.HTTP, endpoint, body, &resp); err != nil {
		return 0, fmt.Errorf("query vulnerabilities for %s: %w", name, err)
	}
	return len(resp.Vulns), nil
}
