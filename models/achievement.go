// models/achievement.go
package models

import "time"

// Criteria kinds an achievement can be evaluated against.
// PagesRead and GoalComplete are reserved: seeded inactive, never evaluated.
const (
	CriteriaSessionCount         = "session_count"
	CriteriaSingleSessionMinutes = "single_session_minutes"
	CriteriaTotalReadingMinutes  = "total_reading_minutes"
	CriteriaBooksCompleted       = "books_completed"
	CriteriaConsecutiveDays      = "consecutive_days"
	CriteriaPagesRead            = "pages_read"
	CriteriaGoalComplete         = "goal_complete"
)

type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Key         string `gorm:"not null;uniqueIndex" json:"key"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Category    string `gorm:"index" json:"category"` // Sessions, Time, Books, Streak
	Tier        string `json:"tier"`                  // Beginner, Intermediate, Advanced, Elite
	Icon        string `json:"icon"`
	Points      int    `gorm:"default:0" json:"points"`

	// Criteria
	CriteriaType   string `gorm:"not null;index" json:"criteria_type"`
	CriteriaTarget int    `gorm:"not null" json:"criteria_target"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAchievement is an unlock record. The composite unique index makes a
// second unlock for the same (user, achievement) a constraint violation.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

// AchievementProgress is a display-only snapshot, keyed by achievement key
// rather than id. It is overwritten, never accumulated, and is not consulted
// for unlock decisions.
type AchievementProgress struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	UserID          uint    `gorm:"not null;uniqueIndex:idx_user_progress" json:"user_id"`
	AchievementKey  string  `gorm:"not null;uniqueIndex:idx_user_progress" json:"achievement_key"`
	CurrentProgress float64 `gorm:"default:0" json:"current_progress"`
	TargetProgress  float64 `gorm:"default:0" json:"target_progress"`
	ProgressData    string  `gorm:"type:text" json:"progress_data,omitempty"`

	LastUpdated time.Time `json:"last_updated"`
}

func (Achievement) TableName() string {
	return "achievements"
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

func (AchievementProgress) TableName() string {
	return "achievement_progress"
}
