// database/seed.go - Default Achievement Catalog
package database

import (
	"log"
	"readrise/models"

	"gorm.io/gorm"
)

// SeedAchievements inserts the default achievement catalog. Existing keys are
// left untouched so re-running migrations never duplicates or resets rows.
func SeedAchievements(db *gorm.DB) error {
	defaults := defaultAchievements()

	seeded := 0
	for _, achievement := range defaults {
		var count int64
		if err := db.Model(&models.Achievement{}).
			Where("key = ?", achievement.Key).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := db.Create(&achievement).Error; err != nil {
			return err
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("✅ Seeded %d achievements", seeded)
	}
	return nil
}

func defaultAchievements() []models.Achievement {
	return []models.Achievement{
		// Sessions
		{Key: "first_session", Title: "First Steps", Description: "Complete your first reading session", Category: "Sessions", Tier: "Beginner", Icon: "📖", Points: 10, CriteriaType: models.CriteriaSessionCount, CriteriaTarget: 1, IsActive: true},
		{Key: "sessions_10", Title: "Getting Into It", Description: "Complete 10 reading sessions", Category: "Sessions", Tier: "Beginner", Icon: "📚", Points: 25, CriteriaType: models.CriteriaSessionCount, CriteriaTarget: 10, IsActive: true},
		{Key: "sessions_50", Title: "Dedicated Reader", Description: "Complete 50 reading sessions", Category: "Sessions", Tier: "Intermediate", Icon: "🎯", Points: 75, CriteriaType: models.CriteriaSessionCount, CriteriaTarget: 50, IsActive: true},
		{Key: "sessions_200", Title: "Session Veteran", Description: "Complete 200 reading sessions", Category: "Sessions", Tier: "Advanced", Icon: "🏆", Points: 200, CriteriaType: models.CriteriaSessionCount, CriteriaTarget: 200, IsActive: true},

		// Time
		{Key: "marathon_30", Title: "Deep Focus", Description: "Read for 30 minutes in a single session", Category: "Time", Tier: "Beginner", Icon: "⏱️", Points: 20, CriteriaType: models.CriteriaSingleSessionMinutes, CriteriaTarget: 30, IsActive: true},
		{Key: "marathon_60", Title: "Marathon Reader", Description: "Read for an hour in a single session", Category: "Time", Tier: "Intermediate", Icon: "🏃", Points: 50, CriteriaType: models.CriteriaSingleSessionMinutes, CriteriaTarget: 60, IsActive: true},
		{Key: "total_minutes_300", Title: "Five Hours In", Description: "Read for 5 hours in total", Category: "Time", Tier: "Beginner", Icon: "🕐", Points: 30, CriteriaType: models.CriteriaTotalReadingMinutes, CriteriaTarget: 300, IsActive: true},
		{Key: "total_minutes_1500", Title: "Time Well Spent", Description: "Read for 25 hours in total", Category: "Time", Tier: "Intermediate", Icon: "⌛", Points: 100, CriteriaType: models.CriteriaTotalReadingMinutes, CriteriaTarget: 1500, IsActive: true},
		{Key: "total_minutes_6000", Title: "Hundred Hour Club", Description: "Read for 100 hours in total", Category: "Time", Tier: "Elite", Icon: "💎", Points: 400, CriteriaType: models.CriteriaTotalReadingMinutes, CriteriaTarget: 6000, IsActive: true},

		// Books
		{Key: "first_book", Title: "Finished!", Description: "Finish your first book", Category: "Books", Tier: "Beginner", Icon: "✅", Points: 25, CriteriaType: models.CriteriaBooksCompleted, CriteriaTarget: 1, IsActive: true},
		{Key: "books_5", Title: "Shelf Progress", Description: "Finish 5 books", Category: "Books", Tier: "Intermediate", Icon: "📕", Points: 75, CriteriaType: models.CriteriaBooksCompleted, CriteriaTarget: 5, IsActive: true},
		{Key: "books_25", Title: "Bookworm", Description: "Finish 25 books", Category: "Books", Tier: "Advanced", Icon: "🐛", Points: 250, CriteriaType: models.CriteriaBooksCompleted, CriteriaTarget: 25, IsActive: true},

		// Streak
		{Key: "streak_3", Title: "Hot Streak", Description: "Read 3 days in a row", Category: "Streak", Tier: "Beginner", Icon: "🔥", Points: 20, CriteriaType: models.CriteriaConsecutiveDays, CriteriaTarget: 3, IsActive: true},
		{Key: "streak_7", Title: "Week Warrior", Description: "Read 7 days in a row", Category: "Streak", Tier: "Intermediate", Icon: "💪", Points: 50, CriteriaType: models.CriteriaConsecutiveDays, CriteriaTarget: 7, IsActive: true},
		{Key: "streak_30", Title: "Monthly Machine", Description: "Read 30 days in a row", Category: "Streak", Tier: "Advanced", Icon: "🗓️", Points: 200, CriteriaType: models.CriteriaConsecutiveDays, CriteriaTarget: 30, IsActive: true},
		{Key: "streak_100", Title: "Centurion", Description: "Read 100 days in a row", Category: "Streak", Tier: "Elite", Icon: "🏛️", Points: 500, CriteriaType: models.CriteriaConsecutiveDays, CriteriaTarget: 100, IsActive: true},

		// Reserved kinds — inactive until page tracking and goals ship
		{Key: "pages_1000", Title: "Page Turner", Description: "Read 1000 pages", Category: "Books", Tier: "Advanced", Icon: "📄", Points: 150, CriteriaType: models.CriteriaPagesRead, CriteriaTarget: 1000, IsActive: false},
		{Key: "goal_first", Title: "Goal Getter", Description: "Complete a reading goal", Category: "Streak", Tier: "Beginner", Icon: "🎯", Points: 30, CriteriaType: models.CriteriaGoalComplete, CriteriaTarget: 1, IsActive: false},
	}
}
