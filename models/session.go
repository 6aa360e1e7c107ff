// models/session.go
package models

import "time"

// ReadingSession is one attempt at a timed reading session. A session is
// created when the timer starts (ActualDuration nil, Completed false) and
// finalized exactly once when it ends; nothing mutates it afterward.
// Only Completed sessions count toward achievement metrics.
type ReadingSession struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`
	BookID uint  `gorm:"not null;index" json:"book_id"`
	Book   *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`

	StartedAt       time.Time  `gorm:"not null;index" json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	PlannedDuration int        `gorm:"not null" json:"planned_duration"`      // seconds
	ActualDuration  *int       `json:"actual_duration,omitempty"`             // seconds, nil until completed
	Completed       bool       `gorm:"default:false;index" json:"completed"`

	Mood  string `gorm:"size:50" json:"mood,omitempty"`
	Notes string `gorm:"type:text" json:"notes,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}
