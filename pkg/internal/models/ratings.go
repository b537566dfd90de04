package models

import "time"

const (
	RatingUpvote   = 1
	RatingDownvote = -1
)

// Rating holds at most one live value per (account, post) pair.
// Re-rating overwrites the row in place.
type Rating struct {
	AccountID uint      `json:"account_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	Value     int       `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
