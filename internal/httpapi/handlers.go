package httpapi

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/internal/registry"
	"github.com/pkgpulse/pkgpulse/schema"
)

// apiHandler holds common dependencies for REST handlers.
type apiHandler struct {
	baseCfg *contract.Config
	fetcher contract.MetricsFetcher
	store   contract.KVStore
}

// setupRoutes configures the versioned API routes.
func setupRoutes(app *fiber.App, cfg *contract.Config, fetcher contract.MetricsFetcher, store contract.KVStore) {
	h := &apiHandler{baseCfg: cfg, fetcher: fetcher, store: store}

	api := app.Group("/api/v1")

	api.Get("/compare", h.compare)
	api.Get("/categories", h.listCategories)
	api.Get("/categories/:id/compare", h.compareCategory)
	api.Get("/infer", h.inferCategory)
	api.Get("/discover", h.discover)
	api.Post("/check", h.check)

	// Wildcard routes so scoped names like @scope/pkg resolve.
	api.Get("/health/*", h.packageHealth)
	api.Get("/alternatives/*", h.alternatives)
	api.Get("/score/*", h.score)
}

// packageParam extracts the package name from a wildcard route segment.
func packageParam(c *fiber.Ctx) string {
	raw := c.Params("*")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// listParam parses a comma-separated query parameter into trimmed,
// non-empty entries.
func listParam(c *fiber.Ctx, key string) []string {
	var items []string
	for _, part := range strings.Split(c.Query(key), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func upstreamError(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway
	if registry.IsNotFound(err) {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func (h *apiHandler) compare(c *fiber.Ctx) error {
	names := listParam(c, "packages")
	if len(names) < 2 {
		return badRequest(c, "at least two package names are required")
	}

	cfg := h.baseCfg.Clone()
	if l := c.QueryInt("limit"); l > 0 {
		cfg.ResultLimit = l
	}

	result, err := core.GetComparisonResult(c.UserContext(), cfg, h.fetcher, names)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(schema.BuildComparisonResponse(result))
}

func (h *apiHandler) compareCategory(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	if categoryID == "" {
		return badRequest(c, "category id is required")
	}

	cfg := h.baseCfg.Clone()
	if l := c.QueryInt("limit"); l > 0 {
		cfg.ResultLimit = l
	}

	result, err := core.GetCategoryComparisonResult(c.UserContext(), cfg, h.fetcher, h.store, categoryID)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(schema.BuildComparisonResponse(result))
}

func (h *apiHandler) packageHealth(c *fiber.Ctx) error {
	name := packageParam(c)
	if name == "" {
		return badRequest(c, "package name is required")
	}

	health, err := core.GetPackageHealthResult(c.UserContext(), h.baseCfg.Clone(), h.fetcher, name)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(health)
}

func (h *apiHandler) alternatives(c *fiber.Ctx) error {
	name := packageParam(c)
	if name == "" {
		return badRequest(c, "package name is required")
	}

	cfg := h.baseCfg.Clone()
	if l := c.QueryInt("limit"); l > 0 {
		cfg.AlternativesLimit = l
	}

	group, err := core.GetAlternativesForResult(c.UserContext(), cfg, h.fetcher, name)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(group)
}

// scoreResponse is the payload for the single-package score endpoint.
type scoreResponse struct {
	Name    string                `json:"name"`
	Score   int                   `json:"score"`
	Badges  []string              `json:"badges"`
	Reasons []string              `json:"reasons"`
	Metrics schema.PackageMetrics `json:"metrics"`
}

func (h *apiHandler) score(c *fiber.Ctx) error {
	name := packageParam(c)
	if name == "" {
		return badRequest(c, "package name is required")
	}

	metrics, err := h.fetcher.FetchMetrics(c.UserContext(), name)
	if err != nil {
		return upstreamError(c, err)
	}

	return c.JSON(scoreResponse{
		Name:    metrics.Name,
		Score:   core.ScorePackage(*metrics),
		Badges:  core.GenerateBadges(*metrics),
		Reasons: core.ExplainScore(*metrics),
		Metrics: *metrics,
	})
}

func (h *apiHandler) discover(c *fiber.Ctx) error {
	keywords := listParam(c, "keywords")
	if len(keywords) == 0 {
		return badRequest(c, "keywords are required")
	}

	groups, err := core.GetDiscoveredGroupsResult(c.UserContext(), h.baseCfg.Clone(), h.fetcher, keywords)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

func (h *apiHandler) inferCategory(c *fiber.Ctx) error {
	keywords := listParam(c, "keywords")
	if len(keywords) == 0 {
		return badRequest(c, "keywords are required")
	}

	id, name := core.InferCategoryResult(c.UserContext(), h.store, keywords)
	if id == "" {
		return c.JSON(fiber.Map{"category": nil})
	}
	return c.JSON(fiber.Map{"category": id, "name": name})
}

func (h *apiHandler) listCategories(c *fiber.Ctx) error {
	categories := core.GetCategoryCatalogResult(c.UserContext(), h.store)
	return c.JSON(fiber.Map{"categories": categories})
}

// checkRequest is the body for the bulk health check endpoint.
type checkRequest struct {
	Packages  []string `json:"packages"`
	Threshold int      `json:"threshold"`
}

func (h *apiHandler) check(c *fiber.Ctx) error {
	var req checkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	if len(req.Packages) == 0 {
		return badRequest(c, "at least one package name is required")
	}

	cfg := h.baseCfg.Clone()
	if req.Threshold > 0 {
		cfg.HealthThreshold = req.Threshold
	}

	return c.JSON(core.GetHealthCheckResult(c.UserContext(), cfg, h.fetcher, req.Packages))
}
