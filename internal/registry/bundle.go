package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// BundleClient reads bundle size measurements from bundlephobia.
type BundleClient struct {
	BaseURL string
	HTTP    *http.Client
}

// BundleStats is the relevant slice of a bundlephobia size report.
type BundleStats struct {
	Size int `json:"size"` // minified bytes
	Gzip int `json:"gzip"` // minified+gzip bytes
}

// Size fetches the bundle stats for a package. Bundlephobia cannot
// build every package; callers should treat an error as "size unknown"
// rather than fatal.
func (c *BundleClient) Size(ctx context.Context, name string) (*BundleStats, error) {
	var stats BundleStats
	endpoint := fmt.Sprintf("%s/api/size?package=%s",
		strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(name))
	if err := getJSON(ctx, c.HTTP, endpoint, nil, &stats); err != nil {
		return nil, fmt.Errorf("fetch bundle size for %s: %w", name, err)
	}
	return &stats, nil
}
