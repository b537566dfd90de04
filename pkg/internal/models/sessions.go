package models

import "time"

// AuthSession backs the browser cookie. Expired rows are swept by the
// periodic cleanup task.
type AuthSession struct {
	BaseModel

	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`

	AccountID uint    `json:"account_id" gorm:"index;not null"`
	Account   Account `json:"account"`
}
