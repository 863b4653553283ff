package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyDownloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/downloads/point/last-week/axios", r.URL.Path)
		fmt.Fprint(w, `{"downloads": 52123456, "package": "axios"}`)
	}))
	defer srv.Close()

	client := &DownloadsClient{BaseURL: srv.URL, HTTP: srv.Client()}
	downloads, err := client.WeeklyDownloads(context.Background(), "axios")
	require.NoError(t, err)
	assert.Equal(t, 52_123_456, downloads)
}

func TestHistory(t *testing.T) {
	// 17 days of data: two full weeks plus a partial bucket to drop.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/downloads/range/last-year/axios", r.URL.Path)

		var days []string
		start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		for i := range 17 {
			day := start.AddDate(0, 0, i)
			days = append(days, fmt.Sprintf(`{"downloads": %d, "day": %q}`, 100+i, day.Format("2006-01-02")))
		}
		fmt.Fprintf(w, `{"downloads": [%s]}`, strings.Join(days, ","))
	}))
	defer srv.Close()

	client := &DownloadsClient{BaseURL: srv.URL, HTTP: srv.Client()}
	samples, err := client.History(context.Background(), "axios")
	require.NoError(t, err)
	require.Len(t, samples, 2, "Partial trailing week should be dropped")

	// First week: 100+101+...+106.
	assert.Equal(t, 721, samples[0].Downloads)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), samples[0].Week)
	// Second week: 107+...+113.
	assert.Equal(t, 770, samples[1].Downloads)
	assert.Equal(t, time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC), samples[1].Week)
}

func TestHistoryEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"downloads": []}`)
	}))
	defer srv.Close()

	client := &DownloadsClient{BaseURL: srv.URL, HTTP: srv.Client()}
	samples, err := client.History(context.Background(), "axios")
	require.NoError(t, err)
	assert.Empty(t, samples)
}
