package main

import (
	"fmt"
	"log"
	"time"

	"enclosure-designer/internal/common/config"
	"enclosure-designer/internal/common/health"
	"enclosure-designer/internal/common/middleware"
	"enclosure-designer/internal/gateway/handlers"
	"enclosure-designer/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	designer := proxy.NewUpstream(cfg.DesignerURL, time.Duration(cfg.WriteTimeout)*time.Second)

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("GATEWAY"))
	app.Use(middleware.CORS(cfg.Environment))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe(designer.Ping))
	app.Get("/health/startup", health.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI("Enclosure Designer API", "/docs/openapi.yaml"))
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec("docs/designer.openapi.yaml"))

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Enclosure Designer API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Designer Service (Proxy)
	// ============================================================

	api.Post("/build", designer.Route("/build"))
	api.Post("/render", designer.Route("/render"))
	api.Post("/wireframe", designer.Route("/wireframe"))
	api.Get("/designs", designer.Route("/designs"))
	api.Get("/designs/:id", designer.Route("/designs/:id"))
	api.Get("/designs/:id/svg", designer.Route("/designs/:id/svg"))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /api/v1 to %s", cfg.DesignerURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
