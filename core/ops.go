package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkgpulse/pkgpulse/core/category"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// GetComparisonResult compares an explicit list of packages. It errors
// rather than returning nil so every surface (CLI, HTTP, MCP) reports
// the same failure modes.
func GetComparisonResult(ctx context.Context, cfg *contract.Config, fetcher contract.MetricsFetcher, names []string) (*schema.GeneratedComparison, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("comparison needs at least two packages, got %d", len(names))
	}
	result := CompareSpecificPackages(ctx, names, fetcher)
	if result == nil {
		return nil, fmt.Errorf("fewer than two of the requested packages could be measured")
	}
	if len(result.Packages) > cfg.ResultLimit {
		result.Packages = result.Packages[:cfg.ResultLimit]
	}
	return result, nil
}

// GetCategoryComparisonResult compares the packages of one category.
// The category's keywords seed a registry search; corpus packages that
// infer back to the same category form the group.
func GetCategoryComparisonResult(ctx context.Context, cfg *contract.Config, fetcher contract.MetricsFetcher, store contract.KVStore, categoryID string) (*schema.GeneratedComparison, error) {
	def, ok := findCategory(ctx, store, categoryID)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", categoryID)
	}

	corpus, err := fetcher.FetchCorpus(ctx, def.Keywords, cfg.CorpusSize)
	if err != nil {
		return nil, fmt.Errorf("search corpus for %s: %w", categoryID, err)
	}

	var members []string
	for _, pkg := range corpus {
		if pkg.WeeklyDownloads < cfg.MinDownloads {
			continue
		}
		if category.InferWithStore(ctx, pkg.Keywords, store) != categoryID {
			continue
		}
		members = append(members, pkg.Name)
		if len(members) == cfg.MaxGroupSize {
			break
		}
	}
	if len(members) < 2 {
		return nil, fmt.Errorf("category %q has too few packages to compare", categoryID)
	}

	group := schema.AlternativeGroup{
		Category:      categoryID,
		CategoryName:  def.Name,
		Packages:      members,
		Confidence:    groupConfidence(len(members)),
		DiscoveredVia: schema.DiscoveredViaKeywords,
	}
	result := GenerateComparison(ctx, group, fetcher)
	if result == nil {
		return nil, fmt.Errorf("fewer than two packages of category %q could be measured", categoryID)
	}
	if len(result.Packages) > cfg.ResultLimit {
		result.Packages = result.Packages[:cfg.ResultLimit]
	}
	return result, nil
}

// findCategory resolves a category ID against the seed catalog first,
// then the discovered set.
func findCategory(ctx context.Context, store contract.KVStore, id string) (schema.CategoryDefinition, bool) {
	if def, ok := category.Get(id); ok {
		return def, true
	}
	for _, ext := range category.All(ctx, store) {
		if ext.ID == id {
			return ext.CategoryDefinition, true
		}
	}
	return schema.CategoryDefinition{}, false
}

// GetPackageHealthResult assembles the full health assessment for one
// package. Alternatives are looked up only when the status calls for a
// recommendation; healthy packages skip the extra registry search.
func GetPackageHealthResult(ctx context.Context, cfg *contract.Config, fetcher contract.MetricsFetcher, name string) (schema.PackageHealth, error) {
	inputs, err := fetcher.FetchHealthInputs(ctx, name)
	if err != nil {
		return schema.PackageHealth{}, err
	}

	signals := BuildHealthSignals(inputs.Repo, inputs.Downloads, inputs.Vulnerabilities, inputs.Deprecated, inputs.DeprecatedMessage)
	score := CalculateHealthScore(signals)
	status := GetHealthStatus(score, signals.Deprecated)

	var alternatives []string
	if status != schema.StatusHealthy && status != schema.StatusStable {
		alternatives = lookupAlternatives(ctx, cfg, fetcher, name, inputs.Keywords)
	}

	return BuildPackageHealth(name, signals, alternatives), nil
}

// lookupAlternatives finds same-category packages for recommendations.
// Failures degrade to no suggestions.
func lookupAlternatives(ctx context.Context, cfg *contract.Config, fetcher contract.MetricsFetcher, name string, keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	corpus, err := fetcher.FetchCorpus(ctx, keywords, cfg.CorpusSize)
	if err != nil {
		return nil
	}
	group := FindAlternativesForPackage(name, keywords, corpus, cfg.AlternativesLimit)
	if group == nil || len(group.Packages) < 2 {
		return nil
	}
	return group.Packages[1:]
}

// GetDiscoveredGroupsResult searches the registry for the given
// keywords and groups the resulting corpus into alternative sets.
func GetDiscoveredGroupsResult(ctx context.Context, cfg *contract.Config, fetcher contract.MetricsFetcher, keywords []string) ([]schema.AlternativeGroup, error) {
	corpus, err := fetcher.FetchCorpus(ctx, keywords, cfg.CorpusSize)
	if err != nil {
		return nil, fmt.Errorf("search corpus: %w", err)
	}
	opts := DiscoverOptions{
		MinDownloads: cfg.MinDownloads,
		MinGroupSize: cfg.MinGroupSize,
		MaxGroupSize: cfg.MaxGroupSize,
	}
	return DiscoverAlternatives(corpus, opts), nil
}

// GetAlternativesForResult finds the alternative group anchored on one
// package.
func GetAlternativesForResult(ctx context.Context, cfg *contract.Config, fetcher contract.MetricsFetcher, name string) (*schema.AlternativeGroup, error) {
	metrics, err := fetcher.FetchMetrics(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(metrics.Keywords) == 0 {
		return nil, fmt.Errorf("package %s has no keywords to infer a category from", name)
	}
	corpus, err := fetcher.FetchCorpus(ctx, metrics.Keywords, cfg.CorpusSize)
	if err != nil {
		return nil, fmt.Errorf("search corpus: %w", err)
	}
	group := FindAlternativesForPackage(name, metrics.Keywords, corpus, cfg.AlternativesLimit)
	if group == nil {
		return nil, fmt.Errorf("could not infer a category for %s", name)
	}
	return group, nil
}

// GetHealthCheckResult runs the CI gate: every named package's health
// score is compared against the threshold. Packages that cannot be
// fetched at all count as failures with a zero score.
func GetHealthCheckResult(ctx context.Context, cfg *contract.Config, fetcher contract.MetricsFetcher, names []string) schema.CheckResult {
	type outcome struct {
		name   string
		score  int
		status schema.HealthStatus
		failed bool
	}
	outcomes := make([]outcome, len(names))

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			inputs, err := fetcher.FetchHealthInputs(ctx, name)
			if err != nil {
				outcomes[i] = outcome{name: name, score: 0, status: schema.StatusAtRisk, failed: true}
				return
			}
			signals := BuildHealthSignals(inputs.Repo, inputs.Downloads, inputs.Vulnerabilities, inputs.Deprecated, inputs.DeprecatedMessage)
			score := CalculateHealthScore(signals)
			status := GetHealthStatus(score, signals.Deprecated)
			outcomes[i] = outcome{name: name, score: score, status: status, failed: score < cfg.HealthThreshold}
		}(i, name)
	}
	wg.Wait()

	result := schema.CheckResult{
		Passed:        true,
		Threshold:     cfg.HealthThreshold,
		TotalPackages: len(names),
	}
	for _, o := range outcomes {
		if o.failed {
			result.Passed = false
			result.FailedPackages = append(result.FailedPackages, schema.CheckFailedPackage{
				Name:   o.name,
				Score:  o.score,
				Status: o.status,
			})
		}
	}
	return result
}

// GetCategoryCatalogResult returns the merged seed and discovered
// catalog.
func GetCategoryCatalogResult(ctx context.Context, store contract.KVStore) []schema.ExtendedCategory {
	return category.All(ctx, store)
}

// InferCategoryResult infers a category for free-text keywords, using
// the discovered catalog when a store is available.
func InferCategoryResult(ctx context.Context, store contract.KVStore, keywords []string) (id, name string) {
	id = category.InferWithStore(ctx, keywords, store)
	if id == "" {
		return "", ""
	}
	return id, category.Name(id)
}
