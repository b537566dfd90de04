package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatePost records the caller's rating of a post. The write is an
// upsert on (account_id, post_id): rating a post twice overwrites the
// stored value and never accumulates a second row. Concurrent re-rating
// by the same user converges on the last write.
func RatePost(postID, accountID uint, value int) error {
	if value != models.RatingUpvote && value != models.RatingDownvote {
		return fmt.Errorf("%w: rating value must be 1 or -1", ErrInvalidArgument)
	}

	var post models.Post
	if err := database.C.Select("id").Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post #%d", ErrNotFound, postID)
		}
		return err
	}

	rating := models.Rating{
		AccountID: accountID,
		PostID:    postID,
		Value:     value,
	}

	return database.C.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}, {Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&rating).Error
}

// RemoveRating withdraws the caller's rating. Removing a rating that
// was never given is not an error.
func RemoveRating(postID, accountID uint) error {
	return database.C.
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Delete(&models.Rating{}).Error
}

func GetRating(postID, accountID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := database.C.
		Where("account_id = ? AND post_id = ?", accountID, postID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func SumPostRating(postID uint) int64 {
	var total int64
	if err := database.C.Model(&models.Rating{}).
		Where("post_id = ?", postID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error; err != nil {
		log.Error().Err(err).Uint("post", postID).Msg("An error occurred when summing post ratings...")
		return 0
	}

	return total
}
