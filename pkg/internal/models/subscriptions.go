package models

// Subscription is a directed follow edge. The ordered pair is unique
// and a user can never follow themselves.
type Subscription struct {
	BaseModel

	FollowerID uint    `json:"follower_id" gorm:"uniqueIndex:idx_subscription_edge;not null"`
	Follower   Account `json:"follower"`
	AccountID  uint    `json:"account_id" gorm:"uniqueIndex:idx_subscription_edge;not null"`
	Account    Account `json:"account"`
}
