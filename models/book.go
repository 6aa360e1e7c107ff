// models/book.go
package models

import "time"

// Reading statuses a book can be in. Only finished books count toward the
// books_completed criteria.
const (
	StatusWantToRead       = "want_to_read"
	StatusCurrentlyReading = "currently_reading"
	StatusFinished         = "finished"
)

type Book struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID" json:"-"`
	Title    string `gorm:"not null;size:500" json:"title"`
	Author   string `gorm:"size:300" json:"author"`
	CoverURL string `gorm:"size:1000" json:"cover_url"`

	ReadingStatus string `gorm:"not null;default:'want_to_read';index" json:"reading_status"`
	Rating        *int   `json:"rating,omitempty"` // 1-5, nil until rated

	// Timestamps
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (Book) TableName() string {
	return "books"
}
