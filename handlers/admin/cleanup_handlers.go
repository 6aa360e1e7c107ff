package admin

import (
	"readrise/services"

	"github.com/gofiber/fiber/v2"
)

// ManualCleanup triggers an immediate abandoned-session sweep
func ManualCleanup(c *fiber.Ctx) error {
	svc := services.GetCleanupService()
	if svc == nil {
		return c.Status(500).JSON(fiber.Map{"error": "Service unavailable"})
	}

	if err := svc.CleanupAbandonedSessions(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Cleanup failed"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Cleanup completed"})
}
