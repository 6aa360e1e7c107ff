// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"readrise/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	// Core application models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.ReadingSession{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.AchievementProgress{},
	); err != nil {
		log.Fatalf("❌ Failed to run core migrations: %v", err)
	}

	log.Println("✅ Core migrations completed")

	// Create indexes for core tables
	createCoreIndexes()

	// Seed the default achievement catalog
	if err := SeedAchievements(db); err != nil {
		log.Fatalf("❌ Failed to seed achievements: %v", err)
	}

	log.Println("✅ All migrations completed successfully")
}

// createCoreIndexes creates indexes for core tables
func createCoreIndexes() {
	db := GetDB()
	log.Println("Creating core indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Book indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_books_user ON books(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_books_status ON books(reading_status)")

	// Session indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_user ON reading_sessions(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_book ON reading_sessions(book_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_started ON reading_sessions(started_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_completed ON reading_sessions(user_id, completed)")

	// Achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_key ON achievements(key)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_active ON achievements(is_active)")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_achievements_unique ON user_achievements(user_id, achievement_id)")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_achievement_progress_unique ON achievement_progress(user_id, achievement_key)")

	log.Println("✅ Core indexes created successfully")
}
