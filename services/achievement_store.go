// services/achievement_store.go - Achievement Persistence
package services

import (
	"context"
	"time"

	"readrise/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementStore is everything the achievement engine needs from storage.
// The engine holds no state of its own, so swapping this for an in-memory
// fake is enough to test every unlock path without a database.
type AchievementStore interface {
	GetAchievementCatalog(ctx context.Context) ([]models.Achievement, error)
	GetUnlockedAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error)
	GetAchievementProgress(ctx context.Context, userID uint) ([]models.AchievementProgress, error)
	GetRecentSessions(ctx context.Context, userID uint, limit int) ([]models.ReadingSession, error)
	GetBooks(ctx context.Context, userID uint) ([]models.Book, error)

	InsertUnlock(ctx context.Context, userID, achievementID uint) (*models.UserAchievement, error)
	WriteProgress(ctx context.Context, userID uint, achievementKey string, current, target float64) (*models.AchievementProgress, error)
}

// GormAchievementStore implements AchievementStore on GORM.
type GormAchievementStore struct {
	db *gorm.DB
}

func NewGormAchievementStore(db *gorm.DB) *GormAchievementStore {
	return &GormAchievementStore{db: db}
}

func (s *GormAchievementStore) GetAchievementCatalog(ctx context.Context) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := s.db.WithContext(ctx).Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (s *GormAchievementStore) GetUnlockedAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	var unlocked []models.UserAchievement
	if err := s.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocked).Error; err != nil {
		return nil, err
	}
	return unlocked, nil
}

func (s *GormAchievementStore) GetAchievementProgress(ctx context.Context, userID uint) ([]models.AchievementProgress, error) {
	var progress []models.AchievementProgress
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *GormAchievementStore) GetRecentSessions(ctx context.Context, userID uint, limit int) ([]models.ReadingSession, error) {
	var sessions []models.ReadingSession
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *GormAchievementStore) GetBooks(ctx context.Context, userID uint) ([]models.Book, error) {
	var books []models.Book
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// InsertUnlock creates the unlock record. The composite unique index on
// (user_id, achievement_id) makes a duplicate insert fail, which the engine
// treats as "not unlocked this pass".
func (s *GormAchievementStore) InsertUnlock(ctx context.Context, userID, achievementID uint) (*models.UserAchievement, error) {
	record := models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// WriteProgress upserts the last-write-wins progress snapshot for
// (user, achievement key).
func (s *GormAchievementStore) WriteProgress(ctx context.Context, userID uint, achievementKey string, current, target float64) (*models.AchievementProgress, error) {
	record := models.AchievementProgress{
		UserID:          userID,
		AchievementKey:  achievementKey,
		CurrentProgress: current,
		TargetProgress:  target,
		LastUpdated:     time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_progress", "target_progress", "last_updated"}),
	}).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
