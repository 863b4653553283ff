package registry

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pkgpulse/pkgpulse/schema"
)

const recentWindow = 182 * 24 * time.Hour // roughly six months

// GitHubClient reads repository statistics from the GitHub REST API.
// Token is optional; unauthenticated requests work with a lower rate
// limit.
type GitHubClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

var githubRepoPattern = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/\s#?]+)`)

// ParseRepoURL extracts the owner and repo from a package.json style
// repository URL. Returns ok=false for non-GitHub or malformed URLs.
func ParseRepoURL(raw string) (owner, repo string, ok bool) {
	m := githubRepoPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", "", false
	}
	repo = strings.TrimSuffix(m[2], ".git")
	if m[1] == "" || repo == "" {
		return "", "", false
	}
	return m[1], repo, true
}

func (c *GitHubClient) headers() map[string]string {
	h := map[string]string{"Accept": "application/vnd.github+json"}
	if c.Token != "" {
		h["Authorization"] = "Bearer " + c.Token
	}
	return h
}

func (c *GitHubClient) repoURL(owner, repo, suffix string) string {
	return fmt.Sprintf("%s/repos/%s/%s%s", strings.TrimRight(c.BaseURL, "/"), owner, repo, suffix)
}

// RepoSignals assembles the GitHub slice of a package's signals. Stats
// endpoints that fail (participation may 202 while GitHub computes it)
// leave their fields at zero rather than failing the whole fetch.
func (c *GitHubClient) RepoSignals(ctx context.Context, owner, repo string) (*schema.RepoSignals, error) {
	var repoResp struct {
		Stars      int       `json:"stargazers_count"`
		OpenIssues int       `json:"open_issues_count"`
		PushedAt   time.Time `json:"pushed_at"`
	}
	if err := getJSON(ctx, c.HTTP, c.repoURL(owner, repo, ""), c.headers(), &repoResp); err != nil {
		return nil, fmt.Errorf("fetch repo %s/%s: %w", owner, repo, err)
	}

	signals := &schema.RepoSignals{
		LastCommit: repoResp.PushedAt,
		Stars:      repoResp.Stars,
		OpenIssues: repoResp.OpenIssues,
	}

	if commits, err := c.recentCommits(ctx, owner, repo); err == nil {
		signals.RecentCommits = commits
	}
	if releases, err := c.recentReleases(ctx, owner, repo); err == nil {
		signals.RecentReleases = releases
	}
	if contributors, err := c.contributorCount(ctx, owner, repo); err == nil {
		signals.Contributors = contributors
	}
	if prs, err := c.openPullRequests(ctx, owner, repo); err == nil {
		signals.OpenPRs = prs
	}
	return signals, nil
}

// recentCommits sums the last 26 weeks of the participation stats.
func (c *GitHubClient) recentCommits(ctx context.Context, owner, repo string) (int, error) {
	var resp struct {
		All []int `json:"all"`
	}
	if err := getJSON(ctx, c.HTTP, c.repoURL(owner, repo, "/stats/participation"), c.headers(), &resp); err != nil {
		return 0, err
	}
	weeks := resp.All
	if len(weeks) > 26 {
		weeks = weeks[len(weeks)-26:]
	}
	total := 0
	for _, n := range weeks {
		total += n
	}
	return total, nil
}

func (c *GitHubClient) recentReleases(ctx context.Context, owner, repo string) (int, error) {
	var releases []struct {
		PublishedAt time.Time `json:"published_at"`
		Draft       bool      `json:"draft"`
	}
	if err := getJSON(ctx, c.HTTP, c.repoURL(owner, repo, "/releases?per_page=30"), c.headers(), &releases); err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-recentWindow)
	count := 0
	for _, r := range releases {
		if !r.Draft && r.PublishedAt.After(cutoff) {
			count++
		}
	}
	return count, nil
}

// contributorCount caps at 100; beyond that the exact number stops
// mattering for scoring.
func (c *GitHubClient) contributorCount(ctx context.Context, owner, repo string) (int, error) {
	var contributors []struct {
		Login string `json:"login"`
	}
	if err := getJSON(ctx, c.HTTP, c.repoURL(owner, repo, "/contributors?per_page=100"), c.headers(), &contributors); err != nil {
		return 0, err
	}
	return len(contributors), nil
}

func (c *GitHubClient) openPullRequests(ctx context.Context, owner, repo string) (int, error) {
	var pulls []struct {
		Number int `json:"number"`
	}
	if err := getJSON(ctx, c.HTTP, c.repoURL(owner, repo, "/pulls?state=open&per_page=100"), c.headers(), &pulls); err != nil {
		return 0, err
	}
	return len(pulls), nil
}
