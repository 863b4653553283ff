// Package httpapi exposes the comparison, health and discovery
// operations over a Fiber REST API.
package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pkgpulse/pkgpulse/internal/contract"
)

// InitLogger sets up the Zap logger to log to the console in a human
// readable format.
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	l, _ := prodConfig.Build()
	return l
}

// NewFiberApp creates and configures a Fiber app with the REST routes.
func NewFiberApp(cfg *contract.Config, fetcher contract.MetricsFetcher, store contract.KVStore) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "pkgpulse API v1.0",
		ReadTimeout: 60 * time.Second,
	})

	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, HEAD, OPTIONS",
	}))
	app.Use(logger.New())

	// Liveness endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	setupRoutes(app, cfg, fetcher, store)

	return app
}

// StartHTTPServer blocks serving the REST API on the configured address.
func StartHTTPServer(cfg *contract.Config, fetcher contract.MetricsFetcher, store contract.KVStore) error {
	l := InitLogger()
	defer func() { _ = l.Sync() }()

	app := NewFiberApp(cfg, fetcher, store)
	l.Info("starting REST API", zap.String("addr", cfg.ServeAddr))
	return app.Listen(cfg.ServeAddr)
}
