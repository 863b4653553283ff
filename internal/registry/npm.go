package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pkgpulse/pkgpulse/schema"
)

// NpmClient reads package documents and search results from an npm
// compatible registry.
type NpmClient struct {
	BaseURL string
	HTTP    *http.Client
}

// Packument is the subset of the registry package document pkgpulse
// cares about.
type Packument struct {
	Name     string                     `json:"name"`
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]VersionManifest `json:"versions"`
	Time     map[string]string          `json:"time"`
	Keywords []string                   `json:"keywords"`
}

// VersionManifest is one published version inside a packument.
type VersionManifest struct {
	Version     string          `json:"version"`
	Deprecated  string          `json:"deprecated"`
	Types       string          `json:"types"`
	Typings     string          `json:"typings"`
	Module      string          `json:"module"`
	Type        string          `json:"type"`
	SideEffects json.RawMessage `json:"sideEffects"`
	Keywords    []string        `json:"keywords"`
	Repository  RepositoryField `json:"repository"`
}

// RepositoryField tolerates both the object and shorthand-string forms
// of package.json's repository field.
type RepositoryField struct {
	URL string
}

func (r *RepositoryField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.URL = s
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.URL = obj.URL
	return nil
}

// Packument fetches the full package document for name.
func (c *NpmClient) Packument(ctx context.Context, name string) (*Packument, error) {
	var doc Packument
	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.BaseURL, "/"), escapePackageName(name))
	if err := getJSON(ctx, c.HTTP, endpoint, nil, &doc); err != nil {
		return nil, fmt.Errorf("fetch packument for %s: %w", name, err)
	}
	return &doc, nil
}

// Latest resolves the manifest of the package's latest version. The
// dist-tags latest pointer wins; when it is missing or does not resolve
// to a published version, the highest semver-valid version is used.
func (p *Packument) Latest() *VersionManifest {
	if tag, ok := p.DistTags["latest"]; ok {
		if m, ok := p.Versions[tag]; ok {
			return &m
		}
	}

	var best *semver.Version
	var bestKey string
	for raw := range p.Versions {
		v, err := semver.NewVersion(raw)
		if err != nil || v.Prerelease() != "" {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestKey = raw
		}
	}
	if best == nil {
		return nil
	}
	m := p.Versions[bestKey]
	return &m
}

// HasTypes reports whether the manifest ships TypeScript definitions.
func (m *VersionManifest) HasTypes() bool {
	return m.Types != "" || m.Typings != ""
}

// IsESM reports whether the manifest ships an ES module build.
func (m *VersionManifest) IsESM() bool {
	return m.Type == "module" || m.Module != ""
}

// TreeShakeable reports whether the manifest declares side-effect-free
// exports (sideEffects: false).
func (m *VersionManifest) TreeShakeable() bool {
	var flag bool
	if err := json.Unmarshal(m.SideEffects, &flag); err != nil {
		return false
	}
	return !flag
}

// MergedKeywords prefers the version manifest's keywords and falls back
// to the top-level packument keywords.
func (p *Packument) MergedKeywords() []string {
	if latest := p.Latest(); latest != nil && len(latest.Keywords) > 0 {
		return latest.Keywords
	}
	return p.Keywords
}

// searchResponse mirrors the registry's /-/v1/search envelope.
type searchResponse struct {
	Objects []struct {
		Package struct {
			Name     string   `json:"name"`
			Keywords []string `json:"keywords"`
		} `json:"package"`
		Downloads struct {
			Weekly int `json:"weekly"`
		} `json:"downloads"`
	} `json:"objects"`
}

// Search queries the registry full-text search for packages matching
// the given keywords and returns them as discovery corpus entries,
// sorted by weekly downloads descending.
func (c *NpmClient) Search(ctx context.Context, keywords []string, size int) ([]schema.CorpusPackage, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("text", "keywords:"+strings.Join(keywords, ","))
	q.Set("size", fmt.Sprintf("%d", size))
	endpoint := fmt.Sprintf("%s/-/v1/search?%s", strings.TrimRight(c.BaseURL, "/"), q.Encode())

	var resp searchResponse
	if err := getJSON(ctx, c.HTTP, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("registry search: %w", err)
	}

	corpus := make([]schema.CorpusPackage, 0, len(resp.Objects))
	for _, obj := range resp.Objects {
		corpus = append(corpus, schema.CorpusPackage{
			Name:            obj.Package.Name,
			Keywords:        obj.Package.Keywords,
			WeeklyDownloads: obj.Downloads.Weekly,
		})
	}
	sort.SliceStable(corpus, func(i, j int) bool {
		return corpus[i].WeeklyDownloads > corpus[j].WeeklyDownloads
	})
	return corpus, nil
}

// escapePackageName encodes a package name for use as a registry path
// segment. Scoped names keep their @ but encode the slash.
func escapePackageName(name string) string {
	return strings.ReplaceAll(url.PathEscape(name), "%40", "@")
}
