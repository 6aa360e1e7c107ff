// handlers/sessions.go - Reading Session Lifecycle
package handlers

import (
	"readrise/database"
	"readrise/middleware"
	"readrise/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type StartSessionRequest struct {
	BookID          uint `json:"book_id"`
	PlannedDuration int  `json:"planned_duration"` // seconds
}

type CompleteSessionRequest struct {
	SessionID      uint   `json:"session_id"`
	ActualDuration int    `json:"actual_duration"` // seconds
	Mood           string `json:"mood,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// StartSession creates a reading session with no duration yet. The session
// does not count toward anything until it is completed.
func StartSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.BookID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "book_id is required"})
	}
	if req.PlannedDuration <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "planned_duration must be positive"})
	}

	db := database.GetDB()

	// The book must belong to the caller
	var book models.Book
	if err := db.Where("id = ? AND user_id = ?", req.BookID, userID).First(&book).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Book not found"})
	}

	session := models.ReadingSession{
		UserID:          userID,
		BookID:          req.BookID,
		StartedAt:       time.Now().UTC(),
		PlannedDuration: req.PlannedDuration,
		Completed:       false,
	}

	if err := db.Create(&session).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to start session"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"session": session,
	})
}

// CompleteSession finalizes a session exactly once — duration and completed
// flag are set together — then runs the achievement engine with it as the
// triggering session. Achievement trouble never fails the completion itself;
// an empty new_achievements list just means nothing newly qualified.
func CompleteSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CompleteSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.ActualDuration < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "actual_duration must not be negative"})
	}

	db := database.GetDB()

	var session models.ReadingSession
	if err := db.Where("id = ? AND user_id = ?", req.SessionID, userID).First(&session).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}

	if session.Completed {
		return c.Status(400).JSON(fiber.Map{"error": "Session already completed"})
	}

	now := time.Now().UTC()
	session.EndedAt = &now
	session.ActualDuration = &req.ActualDuration
	session.Completed = true
	session.Mood = req.Mood
	session.Notes = req.Notes

	if err := db.Save(&session).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to complete session"})
	}

	newAchievements := achievementService.CheckAllAchievements(c.Context(), userID, &session)

	return c.JSON(fiber.Map{
		"success":          true,
		"session":          session,
		"new_achievements": newAchievements,
	})
}

// GetSessions returns the caller's sessions, newest first.
func GetSessions(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 270 {
		limit = 50
	}

	db := database.GetDB()
	var sessions []models.ReadingSession
	if err := db.Preload("Book").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"sessions": sessions,
	})
}
