package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonUnmarshal(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}

const axiosPackument = `{
	"name": "axios",
	"dist-tags": {"latest": "1.7.2"},
	"keywords": ["xhr", "http"],
	"time": {"modified": "2026-08-20T10:00:00.000Z"},
	"versions": {
		"1.7.2": {
			"version": "1.7.2",
			"types": "index.d.ts",
			"type": "module",
			"sideEffects": false,
			"keywords": ["xhr", "http", "ajax", "promise"],
			"repository": {"url": "git+https://github.com/axios/axios.git"}
		}
	}
}`

func newNpmClient(handler http.Handler) (*NpmClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &NpmClient{BaseURL: srv.URL, HTTP: srv.Client()}, srv
}

func TestPackument(t *testing.T) {
	client, srv := newNpmClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/axios", r.URL.Path, "Package name should be the path segment")
		fmt.Fprint(w, axiosPackument)
	}))
	defer srv.Close()

	doc, err := client.Packument(context.Background(), "axios")
	require.NoError(t, err, "Packument fetch should succeed")

	assert.Equal(t, "axios", doc.Name)
	latest := doc.Latest()
	require.NotNil(t, latest, "Latest version should resolve via dist-tags")
	assert.Equal(t, "1.7.2", latest.Version)
	assert.True(t, latest.HasTypes(), "types field should mark TypeScript support")
	assert.True(t, latest.IsESM(), "type=module should mark ESM support")
	assert.True(t, latest.TreeShakeable(), "sideEffects=false should mark tree-shakeable")
	assert.False(t, latest.Deprecated != "", "No deprecation notice expected")
	assert.Equal(t, []string{"xhr", "http", "ajax", "promise"}, doc.MergedKeywords(),
		"Version keywords should win over top-level keywords")
}

func TestPackumentNotFound(t *testing.T) {
	client, srv := newNpmClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := client.Packument(context.Background(), "no-such-package")
	require.Error(t, err, "Missing package should error")
	assert.True(t, IsNotFound(err), "Error should be recognizable as a 404")
}

func TestLatestFallback(t *testing.T) {
	t.Run("highest stable version wins", func(t *testing.T) {
		doc := &Packument{
			Versions: map[string]VersionManifest{
				"1.0.0":        {Version: "1.0.0"},
				"2.1.0":        {Version: "2.1.0"},
				"3.0.0-beta.1": {Version: "3.0.0-beta.1"},
				"not-semver":   {Version: "not-semver"},
			},
		}
		latest := doc.Latest()
		require.NotNil(t, latest)
		assert.Equal(t, "2.1.0", latest.Version, "Prereleases and invalid versions should be skipped")
	})

	t.Run("no stable versions", func(t *testing.T) {
		doc := &Packument{
			Versions: map[string]VersionManifest{
				"1.0.0-rc.1": {Version: "1.0.0-rc.1"},
			},
		}
		assert.Nil(t, doc.Latest(), "A packument with only prereleases has no latest")
	})

	t.Run("dangling dist-tag", func(t *testing.T) {
		doc := &Packument{
			DistTags: map[string]string{"latest": "9.9.9"},
			Versions: map[string]VersionManifest{
				"1.2.3": {Version: "1.2.3"},
			},
		}
		latest := doc.Latest()
		require.NotNil(t, latest)
		assert.Equal(t, "1.2.3", latest.Version, "Unresolvable dist-tag should fall back to semver pick")
	})
}

func TestRepositoryField(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		var m VersionManifest
		err := jsonUnmarshal(`{"repository": {"type": "git", "url": "https://github.com/sindresorhus/ky"}}`, &m)
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/sindresorhus/ky", m.Repository.URL)
	})

	t.Run("shorthand string form", func(t *testing.T) {
		var m VersionManifest
		err := jsonUnmarshal(`{"repository": "github:sindresorhus/ky"}`, &m)
		require.NoError(t, err)
		assert.Equal(t, "github:sindresorhus/ky", m.Repository.URL)
	})
}

func TestTreeShakeable(t *testing.T) {
	t.Run("sideEffects absent", func(t *testing.T) {
		var m VersionManifest
		require.NoError(t, jsonUnmarshal(`{}`, &m))
		assert.False(t, m.TreeShakeable(), "Absent sideEffects should not claim tree-shakeable")
	})

	t.Run("sideEffects as file list", func(t *testing.T) {
		var m VersionManifest
		require.NoError(t, jsonUnmarshal(`{"sideEffects": ["./src/polyfill.js"]}`, &m))
		assert.False(t, m.TreeShakeable(), "A file list is not the boolean false")
	})

	t.Run("sideEffects true", func(t *testing.T) {
		var m VersionManifest
		require.NoError(t, jsonUnmarshal(`{"sideEffects": true}`, &m))
		assert.False(t, m.TreeShakeable())
	})
}

func TestSearch(t *testing.T) {
	client, srv := newNpmClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/-/v1/search", r.URL.Path)
		assert.Equal(t, "keywords:http,request", r.URL.Query().Get("text"))
		assert.Equal(t, "3", r.URL.Query().Get("size"))
		fmt.Fprint(w, `{"objects": [
			{"package": {"name": "got", "keywords": ["http", "request"]}, "downloads": {"weekly": 20000000}},
			{"package": {"name": "axios", "keywords": ["http", "xhr"]}, "downloads": {"weekly": 50000000}},
			{"package": {"name": "ky", "keywords": ["http", "fetch"]}, "downloads": {"weekly": 3000000}}
		]}`)
	}))
	defer srv.Close()

	corpus, err := client.Search(context.Background(), []string{"http", "request"}, 3)
	require.NoError(t, err, "Search should succeed")
	require.Len(t, corpus, 3)
	assert.Equal(t, "axios", corpus[0].Name, "Results should be ordered by weekly downloads")
	assert.Equal(t, "got", corpus[1].Name)
	assert.Equal(t, "ky", corpus[2].Name)
	assert.Equal(t, 50_000_000, corpus[0].WeeklyDownloads)
}

func TestSearchNoKeywords(t *testing.T) {
	client := &NpmClient{BaseURL: "http://unused.invalid", HTTP: http.DefaultClient}
	corpus, err := client.Search(context.Background(), nil, 10)
	assert.NoError(t, err)
	assert.Nil(t, corpus, "Empty keyword list should short-circuit")
}

func TestEscapePackageName(t *testing.T) {
	assert.Equal(t, "axios", escapePackageName("axios"))
	assert.Equal(t, "@types%2Fnode", escapePackageName("@types/node"))
}
