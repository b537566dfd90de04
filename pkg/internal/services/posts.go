package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func PostContentLimit() int {
	if limit := viper.GetInt("content.max_length"); limit > 0 {
		return limit
	}
	return 5000
}

func validatePostContent(content string) error {
	length := len([]rune(content))
	if length == 0 {
		return fmt.Errorf("%w: content cannot be empty", ErrInvalidArgument)
	}
	if limit := PostContentLimit(); length > limit {
		return fmt.Errorf("%w: content cannot be longer than %d characters", ErrInvalidArgument, limit)
	}
	return nil
}

func FilterPostWithAuthor(tx *gorm.DB, authorID uint) *gorm.DB {
	return tx.Where("posts.author_id = ?", authorID)
}

func FilterPostWithHashtag(tx *gorm.DB, tag string) *gorm.DB {
	return tx.Joins("JOIN post_hashtags ON posts.id = post_hashtags.post_id").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Where("hashtags.tag = ?", NormalizeHashtag(tag))
}

// FilterPostWithSubscriptionsOf narrows posts to those authored by
// anyone the given user follows.
func FilterPostWithSubscriptionsOf(tx *gorm.DB, followerID uint) *gorm.DB {
	return tx.Where(
		"posts.author_id IN (?)",
		database.C.Model(&models.Subscription{}).
			Select("account_id").
			Where("follower_id = ?", followerID),
	)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Hashtags").
		Preload("Author")
}

func GetPost(id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(database.C).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: post #%d", ErrNotFound, id)
		}
		return item, err
	}

	item.TotalRating = SumPostRating(item.ID)

	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Distinct("posts.id").Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

// ListPost pages through the filtered set with the per-post rating sum
// attached. Aggregates are computed on read; nothing is maintained
// incrementally, so heavy leaderboard traffic should not assume O(1).
func ListPost(tx *gorm.DB, p Pagination) ([]*models.Post, error) {
	order := "posts.created_at " + p.Direction()
	if p.OrderBy == OrderByRating {
		order = "total_rating " + p.Direction()
	}

	var items []*models.Post
	if err := PreloadGeneral(tx).
		Model(&models.Post{}).
		Select("posts.*, COALESCE(SUM(ratings.value), 0) AS total_rating").
		Joins("LEFT JOIN ratings ON ratings.post_id = posts.id").
		Group("posts.id").
		Order(order).
		Limit(p.Take()).Offset(p.Offset()).
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

// NewPost inserts the post row and links its hashtags as one unit of
// work. A failure while linking rolls the row back too.
func NewPost(authorID uint, content string) (models.Post, error) {
	if err := validatePostContent(content); err != nil {
		return models.Post{}, err
	}

	item := models.Post{
		Content:  content,
		Language: DetectPostLanguage(content),
		AuthorID: authorID,
	}

	tags := ExtractHashtags(content)
	start := time.Now()

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return LinkPostHashtags(tx, item, tags)
	}); err != nil {
		return item, err
	}

	log.Debug().Uint("post", item.ID).Int("tags", len(tags)).Dur("elapsed", time.Since(start)).Msg("The post is posted.")
	return GetPost(item.ID)
}

// EditPost replaces the content of a post. The stale hashtag links, the
// row update and the relink happen in one transaction, so a failure at
// any step leaves the post exactly as it was.
func EditPost(id uint, actor models.Principal, content string) (models.Post, error) {
	var item models.Post
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: post #%d", ErrNotFound, id)
		}
		return item, err
	}

	if !CanAct(actor, item.AuthorID, ActionMutatePost) {
		return item, fmt.Errorf("%w: you cannot edit this post", ErrForbidden)
	}

	if err := validatePostContent(content); err != nil {
		return item, err
	}

	tags := ExtractHashtags(content)

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := UnlinkPostHashtags(tx, item); err != nil {
			return err
		}

		item.Content = content
		item.Language = DetectPostLanguage(content)
		item.EditedAt = lo.ToPtr(time.Now())
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		return LinkPostHashtags(tx, item, tags)
	}); err != nil {
		return item, err
	}

	return GetPost(item.ID)
}

// DeletePost removes the post with its hashtag links and ratings in one
// transaction. The store is never left with rows referencing a missing
// post; hashtag rows themselves are kept even when orphaned.
func DeletePost(id uint, actor models.Principal) error {
	var item models.Post
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post #%d", ErrNotFound, id)
		}
		return err
	}

	if !CanAct(actor, item.AuthorID, ActionMutatePost) {
		return fmt.Errorf("%w: you cannot delete this post", ErrForbidden)
	}

	return DeletePostCascading(database.C, item)
}

func DeletePostCascading(tx *gorm.DB, item models.Post) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := UnlinkPostHashtags(tx, item); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}
