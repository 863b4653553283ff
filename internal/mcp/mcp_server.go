// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pkgpulse/pkgpulse/internal/contract"
)

// NewMCPServer initializes and configures the pkgpulse MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fetcher contract.MetricsFetcher, store contract.KVStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Package Intelligence Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fetcher: fetcher,
		store:   store,
	}

	// --- 1. Tool: compare_packages ---
	s.AddTool(mcp.NewTool("compare_packages",
		mcp.WithDescription("Compare npm packages by composite score: downloads, bundle size, maintenance, popularity and quality signals."),
		mcp.WithString("packages", mcp.Description("Comma-separated package names to compare (at least two)."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked results returned.")),
	), h.handleComparePackages)

	// --- 2. Tool: compare_category ---
	s.AddTool(mcp.NewTool("compare_category",
		mcp.WithDescription("Compare the packages of one category (e.g. http-client, testing, state-management)."),
		mcp.WithString("category", mcp.Description("Category ID to compare."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked results returned.")),
	), h.handleCompareCategory)

	// --- 3. Tool: package_health ---
	s.AddTool(mcp.NewTool("package_health",
		mcp.WithDescription("Assess the health of one npm package: score, status, signals, and migration advice when warranted."),
		mcp.WithString("name", mcp.Description("The npm package name."), mcp.Required()),
	), h.handlePackageHealth)

	// --- 4. Tool: find_alternatives ---
	s.AddTool(mcp.NewTool("find_alternatives",
		mcp.WithDescription("Find packages competing in the same category as the given package."),
		mcp.WithString("name", mcp.Description("The npm package name to find alternatives for."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Maximum group size including the package itself.")),
	), h.handleFindAlternatives)

	// --- 5. Tool: discover_alternatives ---
	s.AddTool(mcp.NewTool("discover_alternatives",
		mcp.WithDescription("Search the registry by keywords and group the results into alternative sets."),
		mcp.WithString("keywords", mcp.Description("Comma-separated keywords to search for."), mcp.Required()),
	), h.handleDiscoverAlternatives)

	// --- 6. Tool: infer_category ---
	s.AddTool(mcp.NewTool("infer_category",
		mcp.WithDescription("Infer the best-matching category for a set of keywords."),
		mcp.WithString("keywords", mcp.Description("Comma-separated keywords."), mcp.Required()),
	), h.handleInferCategory)

	// --- 7. Tool: list_categories ---
	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the known package categories, both curated and discovered."),
	), h.handleListCategories)

	return s
}

// StartMCPServer starts the pkgpulse MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, fetcher contract.MetricsFetcher, store contract.KVStore) error {
	s := NewMCPServer(baseCfg, fetcher, store)
	return server.ServeStdio(s)
}
