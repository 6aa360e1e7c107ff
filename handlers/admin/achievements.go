package admin

import (
	"readrise/database"
	"readrise/models"

	"github.com/gofiber/fiber/v2"
)

func validCriteriaType(criteriaType string) bool {
	switch criteriaType {
	case models.CriteriaSessionCount,
		models.CriteriaSingleSessionMinutes,
		models.CriteriaTotalReadingMinutes,
		models.CriteriaBooksCompleted,
		models.CriteriaConsecutiveDays,
		models.CriteriaPagesRead,
		models.CriteriaGoalComplete:
		return true
	}
	return false
}

// GetAchievements returns the full achievement catalog, inactive rows included
func GetAchievements(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievements []models.Achievement
	if err := db.Order("category, criteria_target").Find(&achievements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch achievements",
		})
	}

	return c.JSON(achievements)
}

// CreateAchievement creates a new achievement
func CreateAchievement(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievement models.Achievement
	if err := c.BodyParser(&achievement); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if achievement.Key == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Key is required",
		})
	}
	if !validCriteriaType(achievement.CriteriaType) {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid criteria type",
		})
	}
	if achievement.CriteriaTarget <= 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "Criteria target must be positive",
		})
	}

	if err := db.Create(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to create achievement",
		})
	}

	return c.Status(201).JSON(achievement)
}

// UpdateAchievement updates an existing achievement's display fields and
// active flag. Key and criteria are immutable once unlock records may
// reference them.
func UpdateAchievement(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var achievement models.Achievement
	if err := db.First(&achievement, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Achievement not found",
		})
	}

	var updateData struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Tier        string `json:"tier"`
		Icon        string `json:"icon"`
		Points      *int   `json:"points"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.Title != "" {
		achievement.Title = updateData.Title
	}
	if updateData.Description != "" {
		achievement.Description = updateData.Description
	}
	if updateData.Category != "" {
		achievement.Category = updateData.Category
	}
	if updateData.Tier != "" {
		achievement.Tier = updateData.Tier
	}
	if updateData.Icon != "" {
		achievement.Icon = updateData.Icon
	}
	if updateData.Points != nil {
		achievement.Points = *updateData.Points
	}
	if updateData.IsActive != nil {
		achievement.IsActive = *updateData.IsActive
	}

	if err := db.Save(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to update achievement",
		})
	}

	return c.JSON(achievement)
}

// DeleteAchievement deactivates an achievement instead of deleting it, so
// existing unlock records keep resolving to a catalog entry.
func DeleteAchievement(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var achievement models.Achievement
	if err := db.First(&achievement, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Achievement not found",
		})
	}

	if err := db.Model(&achievement).Update("is_active", false).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to deactivate achievement",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Achievement deactivated successfully",
	})
}
