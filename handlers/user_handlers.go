package handlers

import (
	"readrise/database"
	"readrise/middleware"
	"readrise/models"

	"github.com/gofiber/fiber/v2"
)

func GetCurrentUser(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

func UpdateCurrentUser(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)

	var req struct {
		DisplayName      *string `json:"display_name"`
		Avatar           *string `json:"avatar"`
		Bio              *string `json:"bio"`
		DailyGoalMinutes *int    `json:"daily_goal_minutes"`
		Timezone         *string `json:"timezone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.DailyGoalMinutes != nil {
		updates["daily_goal_minutes"] = *req.DailyGoalMinutes
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}

	db := database.GetDB()
	if len(updates) > 0 {
		if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update profile"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	db := database.GetDB()
	var users []models.User
	db.Where("username LIKE ?", "%"+query+"%").Limit(20).Find(&users)
	return c.JSON(fiber.Map{"success": true, "users": users})
}

func GetUserProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	db := database.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}
