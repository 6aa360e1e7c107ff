// handlers/stats.go - Reading Statistics
package handlers

import (
	"time"

	"readrise/database"
	"readrise/middleware"
	"readrise/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserStats returns the caller's aggregate reading stats. These share the
// achievement engine's metric definitions but play no part in unlocks.
func GetUserStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := achievementService.CalculateUserStats(c.Context(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to calculate stats",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

// GetOnlineReadersCount returns the number of currently active readers
func GetOnlineReadersCount(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Database not available",
		})
	}

	// Update current user's activity if authenticated
	userID := c.Locals("userId")
	if userID != nil {
		now := time.Now()
		db.Model(&models.User{}).Where("id = ?", userID).Update("last_activity", now)
	}

	// Count users who have been active in the last 5 minutes
	cutoffTime := time.Now().Add(-5 * time.Minute)

	var count int64
	err := db.Model(&models.User{}).Where("last_activity > ?", cutoffTime).Count(&count).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to get online readers count",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
	})
}

// GetLastReadTime returns when the caller last completed a reading session
func GetLastReadTime(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Database not available",
		})
	}

	userID := c.Locals("userId")
	if userID == nil {
		return c.JSON(fiber.Map{
			"success":  true,
			"lastRead": "Never",
		})
	}

	var session models.ReadingSession
	err := db.Where("user_id = ? AND completed = ?", userID, true).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		return c.JSON(fiber.Map{
			"success":  true,
			"lastRead": "Never",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"lastRead": session.StartedAt.Format("Jan 2, 2006 at 3:04 PM"),
	})
}
