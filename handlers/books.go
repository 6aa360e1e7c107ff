// handlers/books.go - Library Management
package handlers

import (
	"readrise/database"
	"readrise/middleware"
	"readrise/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type BookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverURL      string `json:"cover_url"`
	ReadingStatus string `json:"reading_status"`
	Rating        *int   `json:"rating"`
}

func validReadingStatus(status string) bool {
	switch status {
	case models.StatusWantToRead, models.StatusCurrentlyReading, models.StatusFinished:
		return true
	}
	return false
}

// GetBooks returns the caller's library, optionally filtered by status.
func GetBooks(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	query := db.Where("user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		if !validReadingStatus(status) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid reading status"})
		}
		query = query.Where("reading_status = ?", status)
	}

	var books []models.Book
	if err := query.Order("updated_at DESC").Find(&books).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch books"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"books":   books,
	})
}

// AddBook adds a book to the caller's library.
func AddBook(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}

	status := req.ReadingStatus
	if status == "" {
		status = models.StatusWantToRead
	}
	if !validReadingStatus(status) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reading status"})
	}

	book := models.Book{
		UserID:        userID,
		Title:         req.Title,
		Author:        req.Author,
		CoverURL:      req.CoverURL,
		ReadingStatus: status,
		Rating:        req.Rating,
	}
	if status == models.StatusFinished {
		now := time.Now().UTC()
		book.FinishedAt = &now
	}

	db := database.GetDB()
	if err := db.Create(&book).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add book"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"book":    book,
	})
}

// UpdateBook updates a book's details or status. Marking a book finished
// feeds the books_completed achievement criteria; the engine re-checks on an
// explicit /achievements/check or the next completed session.
func UpdateBook(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()

	var book models.Book
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&book).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Book not found"})
	}

	if req.Title != "" {
		book.Title = req.Title
	}
	if req.Author != "" {
		book.Author = req.Author
	}
	if req.CoverURL != "" {
		book.CoverURL = req.CoverURL
	}
	if req.Rating != nil {
		book.Rating = req.Rating
	}
	if req.ReadingStatus != "" {
		if !validReadingStatus(req.ReadingStatus) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid reading status"})
		}
		if req.ReadingStatus == models.StatusFinished && book.ReadingStatus != models.StatusFinished {
			now := time.Now().UTC()
			book.FinishedAt = &now
		}
		book.ReadingStatus = req.ReadingStatus
	}

	if err := db.Save(&book).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update book"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"book":    book,
	})
}

// DeleteBook removes a book from the caller's library.
func DeleteBook(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	result := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).Delete(&models.Book{})
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete book"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Book not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
