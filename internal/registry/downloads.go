package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkgpulse/pkgpulse/schema"
)

// DownloadsClient reads download counts from the npm downloads API.
type DownloadsClient struct {
	BaseURL string
	HTTP    *http.Client
}

// WeeklyDownloads returns the download count over the most recent week.
func (c *DownloadsClient) WeeklyDownloads(ctx context.Context, name string) (int, error) {
	var resp struct {
		Downloads int `json:"downloads"`
	}
	endpoint := fmt.Sprintf("%s/downloads/point/last-week/%s",
		strings.TrimRight(c.BaseURL, "/"), escapePackageName(name))
	if err := getJSON(ctx, c.HTTP, endpoint, nil, &resp); err != nil {
		return 0, fmt.Errorf("fetch weekly downloads for %s: %w", name, err)
	}
	return resp.Downloads, nil
}

// History returns up to a year of weekly download samples, oldest
// first. The API reports per-day counts; days are folded into
// seven-day buckets anchored on the first reported day, and a trailing
// partial bucket is dropped so every sample covers a full week.
func (c *DownloadsClient) History(ctx context.Context, name string) ([]schema.WeeklySample, error) {
	var resp struct {
		Downloads []struct {
			Downloads int    `json:"downloads"`
			Day       string `json:"day"`
		} `json:"downloads"`
	}
	endpoint := fmt.Sprintf("%s/downloads/range/last-year/%s",
		strings.TrimRight(c.BaseURL, "/"), escapePackageName(name))
	if err := getJSON(ctx, c.HTTP, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch download history for %s: %w", name, err)
	}

	var samples []schema.WeeklySample
	for start := 0; start+7 <= len(resp.Downloads); start += 7 {
		week, err := time.Parse("2006-01-02", resp.Downloads[start].Day)
		if err != nil {
			return nil, fmt.Errorf("parse download day %q: %w", resp.Downloads[start].Day, err)
		}
		total := 0
		for _, day := range resp.Downloads[start : start+7] {
			total += day.Downloads
		}
		samples = append(samples, schema.WeeklySample{Week: week, Downloads: total})
	}
	return samples, nil
}
