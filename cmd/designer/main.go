package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"enclosure-designer/internal/common/config"
	"enclosure-designer/internal/common/health"
	"enclosure-designer/internal/common/middleware"
	"enclosure-designer/internal/designer/handlers"
	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/parser"
	"enclosure-designer/internal/designer/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Designer Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	base, err := loadBaseParameters(cfg.ParamsPath)
	if err != nil {
		log.Fatalf("load parameters: %v", err)
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	designHandler := handlers.NewDesignHandler(repo, base)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Designer Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("DESIGNER"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe(db.Ping))
	app.Get("/health/startup", health.StartupProbe)

	// ============================================================
	// Designer Routes
	// ============================================================

	app.Post("/build", designHandler.Build)
	app.Get("/designs", designHandler.ListDesigns)
	app.Get("/designs/:id", designHandler.GetDesign)
	app.Get("/designs/:id/svg", designHandler.GetDesignSVG)
	app.Post("/render", designHandler.Render)
	app.Post("/wireframe", designHandler.Wireframe)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Designer Service on %s (env: %s, unit: %s)", addr, cfg.Environment, base.Unit)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadBaseParameters параметры по умолчанию: эталонная рация, поверх нее файл, если задан.
func loadBaseParameters(path string) (models.Parameters, error) {
	base := models.DefaultParameters()
	if path == "" {
		return base, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return models.Parameters{}, err
	}
	defer f.Close()

	params, err := parser.ParseParameters(f, parser.DetectFormat(path, ""), base)
	if err != nil {
		return models.Parameters{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return models.Parameters{}, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("[DESIGNER] Base parameters loaded from %s", path)
	return params, nil
}
