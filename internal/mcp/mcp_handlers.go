package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fetcher contract.MetricsFetcher
	store   contract.KVStore
}

// splitList parses a comma-separated argument into trimmed, non-empty
// entries.
func splitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func (h *toolHandler) handleComparePackages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := splitList(request.GetString("packages", ""))
	if len(names) < 2 {
		return mcp.NewToolResultError("at least two package names are required"), nil
	}

	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	result, err := core.GetComparisonResult(ctx, cfg, h.fetcher, names)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(schema.BuildComparisonResponse(result), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categoryID := strings.TrimSpace(request.GetString("category", ""))
	if categoryID == "" {
		return mcp.NewToolResultError("category is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	result, err := core.GetCategoryComparisonResult(ctx, cfg, h.fetcher, h.store, categoryID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(schema.BuildComparisonResponse(result), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePackageHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	health, err := core.GetPackageHealthResult(ctx, h.baseCfg.Clone(), h.fetcher, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("health assessment failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(health, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFindAlternatives(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.AlternativesLimit = l
	}

	group, err := core.GetAlternativesForResult(ctx, cfg, h.fetcher, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("alternatives lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(group, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDiscoverAlternatives(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keywords := splitList(request.GetString("keywords", ""))
	if len(keywords) == 0 {
		return mcp.NewToolResultError("keywords are required"), nil
	}

	groups, err := core.GetDiscoveredGroupsResult(ctx, h.baseCfg.Clone(), h.fetcher, keywords)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("discovery failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(groups, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleInferCategory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keywords := splitList(request.GetString("keywords", ""))
	if len(keywords) == 0 {
		return mcp.NewToolResultError("keywords are required"), nil
	}

	id, name := core.InferCategoryResult(ctx, h.store, keywords)
	if id == "" {
		return mcp.NewToolResultText(`{"category": null}`), nil
	}

	jsonData, _ := json.MarshalIndent(map[string]string{"category": id, "name": name}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories := core.GetCategoryCatalogResult(ctx, h.store)
	jsonData, _ := json.MarshalIndent(categories, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
