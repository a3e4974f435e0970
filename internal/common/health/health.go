package health

import (
	"log"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Probes
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe готовность определяется check: база для designer, upstream для шлюза.
func ReadinessProbe(check func() error) fiber.Handler {
	return func(c fiber.Ctx) error {
		if check != nil {
			if err := check(); err != nil {
				log.Printf("[HEALTH] Not ready: %v", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "not ready",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
