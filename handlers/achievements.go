// handlers/achievements.go - Achievement Endpoints
package handlers

import (
	"readrise/database"
	"readrise/middleware"
	"readrise/models"
	"readrise/services"

	"github.com/gofiber/fiber/v2"
)

var achievementService *services.AchievementService

// InitAchievementHandlers wires the achievement engine to the live database.
// Must run after database.InitDB.
func InitAchievementHandlers() {
	store := services.NewGormAchievementStore(database.GetDB())
	achievementService = services.NewAchievementService(store)
}

// GetUserAchievements returns the full catalog merged with the caller's
// unlock records and progress snapshots.
func GetUserAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var unlocked []models.UserAchievement
	if err := db.Where("user_id = ?", userID).Order("unlocked_at DESC").Find(&unlocked).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	var catalog []models.Achievement
	if err := db.Where("is_active = ?", true).Order("category, criteria_target").Find(&catalog).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievement catalog"})
	}

	var progress []models.AchievementProgress
	if err := db.Where("user_id = ?", userID).Find(&progress).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievement progress"})
	}

	unlockedMap := make(map[uint]models.UserAchievement, len(unlocked))
	for _, record := range unlocked {
		unlockedMap[record.AchievementID] = record
	}
	progressMap := make(map[string]models.AchievementProgress, len(progress))
	for _, row := range progress {
		progressMap[row.AchievementKey] = row
	}

	achievements := make([]fiber.Map, 0, len(catalog))
	unlockedCount := 0
	for _, achievement := range catalog {
		entry := fiber.Map{
			"id":              achievement.ID,
			"key":             achievement.Key,
			"title":           achievement.Title,
			"description":     achievement.Description,
			"category":        achievement.Category,
			"tier":            achievement.Tier,
			"icon":            achievement.Icon,
			"points":          achievement.Points,
			"criteria_type":   achievement.CriteriaType,
			"criteria_target": achievement.CriteriaTarget,
			"unlocked":        false,
		}

		if record, ok := unlockedMap[achievement.ID]; ok {
			entry["unlocked"] = true
			entry["unlocked_at"] = record.UnlockedAt
			unlockedCount++
		}
		if row, ok := progressMap[achievement.Key]; ok {
			entry["current_progress"] = row.CurrentProgress
			entry["target_progress"] = row.TargetProgress
		}

		achievements = append(achievements, entry)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(catalog),
		"unlocked":     unlockedCount,
	})
}

// CheckAchievements runs a full evaluation pass on demand, without a
// triggering session. Useful after book-status changes.
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	newAchievements := achievementService.CheckAllAchievements(c.Context(), userID, nil)

	return c.JSON(fiber.Map{
		"success":          true,
		"new_achievements": newAchievements,
	})
}

// GetAchievementProgress returns the caller's raw progress snapshots.
func GetAchievementProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var progress []models.AchievementProgress
	if err := db.Where("user_id = ?", userID).Find(&progress).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievement progress"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progress,
	})
}
