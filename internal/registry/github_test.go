package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{"git+https form", "git+https://github.com/axios/axios.git", "axios", "axios", true},
		{"plain https", "https://github.com/sindresorhus/ky", "sindresorhus", "ky", true},
		{"ssh form", "git@github.com:expressjs/express.git", "expressjs", "express", true},
		{"with tree fragment", "https://github.com/facebook/react/tree/main/packages/react", "facebook", "react", true},
		{"gitlab", "https://gitlab.com/gitlab-org/gitlab", "", "", false},
		{"empty", "", "", "", false},
		{"garbage", "not a url", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, ok := ParseRepoURL(tc.raw)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantOwner, owner)
			assert.Equal(t, tc.wantRepo, repo)
		})
	}
}

func TestRepoSignals(t *testing.T) {
	pushedAt := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Second)
	recentRelease := time.Now().UTC().Add(-30 * 24 * time.Hour)
	oldRelease := time.Now().UTC().Add(-400 * 24 * time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/axios/axios", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprintf(w, `{"stargazers_count": 105000, "open_issues_count": 680, "pushed_at": %q}`,
			pushedAt.Format(time.RFC3339))
	})
	mux.HandleFunc("/repos/axios/axios/stats/participation", func(w http.ResponseWriter, r *http.Request) {
		// 52 weekly buckets, 2 commits each.
		counts := "2"
		for range 51 {
			counts += ",2"
		}
		fmt.Fprintf(w, `{"all": [%s]}`, counts)
	})
	mux.HandleFunc("/repos/axios/axios/releases", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"published_at": %q, "draft": false},
			{"published_at": %q, "draft": true},
			{"published_at": %q, "draft": false}
		]`, recentRelease.Format(time.RFC3339), recentRelease.Format(time.RFC3339), oldRelease.Format(time.RFC3339))
	})
	mux.HandleFunc("/repos/axios/axios/contributors", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"login": "a"}, {"login": "b"}, {"login": "c"}]`)
	})
	mux.HandleFunc("/repos/axios/axios/pulls", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number": 1}, {"number": 2}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &GitHubClient{BaseURL: srv.URL, Token: "test-token", HTTP: srv.Client()}
	signals, err := client.RepoSignals(context.Background(), "axios", "axios")
	require.NoError(t, err)

	assert.Equal(t, 105_000, signals.Stars)
	assert.Equal(t, 680, signals.OpenIssues)
	assert.WithinDuration(t, pushedAt, signals.LastCommit, time.Second)
	assert.Equal(t, 52, signals.RecentCommits, "Last 26 participation weeks at 2 commits each")
	assert.Equal(t, 1, signals.RecentReleases, "Drafts and old releases should not count")
	assert.Equal(t, 3, signals.Contributors)
	assert.Equal(t, 2, signals.OpenPRs)
}

func TestRepoSignalsDegraded(t *testing.T) {
	// Only the repo endpoint works; stats endpoints return 202 while
	// GitHub computes them. The fetch should still succeed.
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/tj/commander.js", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"stargazers_count": 27000, "open_issues_count": 12, "pushed_at": "2026-08-01T00:00:00Z"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &GitHubClient{BaseURL: srv.URL, HTTP: srv.Client()}
	signals, err := client.RepoSignals(context.Background(), "tj", "commander.js")
	require.NoError(t, err, "Missing stats should degrade, not fail")
	assert.Equal(t, 27_000, signals.Stars)
	assert.Zero(t, signals.RecentCommits)
	assert.Zero(t, signals.Contributors)
}

func TestRepoSignalsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := &GitHubClient{BaseURL: srv.URL, HTTP: srv.Client()}
	_, err := client.RepoSignals(context.Background(), "gone", "gone")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
