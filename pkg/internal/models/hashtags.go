package models

// Hashtag rows are created lazily on first use and kept forever, even
// when no post references them anymore.
type Hashtag struct {
	BaseModel

	Tag   string `json:"tag" gorm:"uniqueIndex;not null"`
	Posts []Post `json:"posts,omitempty" gorm:"many2many:post_hashtags"`
}

// PostHashtag is the join row between a post and a hashtag. It must
// exactly reflect the extraction of the post's current content, so
// content updates replace the post's rows wholesale.
type PostHashtag struct {
	PostID    uint `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	HashtagID uint `json:"hashtag_id" gorm:"primaryKey;autoIncrement:false"`
}
