package models

import "time"

type Post struct {
	BaseModel

	Content  string     `json:"content" gorm:"not null"`
	Language string     `json:"language"`
	EditedAt *time.Time `json:"edited_at"`

	Hashtags []Hashtag `json:"hashtags" gorm:"many2many:post_hashtags"`

	AuthorID uint    `json:"author_id" gorm:"index;not null"`
	Author   Account `json:"author"`

	// Filled by aggregate queries, never stored.
	TotalRating int64 `json:"total_rating" gorm:"->;-:migration"`
}
