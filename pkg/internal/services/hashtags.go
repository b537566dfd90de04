package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var hashtagPattern = regexp.MustCompile(`#[a-zA-Zа-яА-ЯёЁ0-9_]+`)

// ExtractHashtags returns every hashtag token of the content, lowercased,
// in order of appearance. Duplicates are kept; linking is idempotent.
func ExtractHashtags(content string) []string {
	return lo.Map(hashtagPattern.FindAllString(content, -1), func(item string, _ int) string {
		return strings.ToLower(item)
	})
}

// GetHashtagOrCreate looks a normalized tag up and lazily creates it.
// Two requests can both miss the lookup and race on the insert, so the
// insert does nothing on conflict and the loser re-reads the winner's row.
func GetHashtagOrCreate(tx *gorm.DB, tag string) (models.Hashtag, error) {
	var hashtag models.Hashtag
	err := tx.Where("tag = ?", tag).First(&hashtag).Error
	if err == nil {
		return hashtag, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return hashtag, err
	}

	hashtag = models.Hashtag{Tag: tag}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tag"}},
		DoNothing: true,
	}).Create(&hashtag).Error; err != nil {
		return hashtag, err
	}
	if hashtag.ID == 0 {
		if err := tx.Where("tag = ?", tag).First(&hashtag).Error; err != nil {
			return hashtag, fmt.Errorf("unable to load concurrently created hashtag: %v", err)
		}
	}

	return hashtag, nil
}

func LinkPostHashtags(tx *gorm.DB, post models.Post, tags []string) error {
	for _, tag := range tags {
		hashtag, err := GetHashtagOrCreate(tx, tag)
		if err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.PostHashtag{
			PostID:    post.ID,
			HashtagID: hashtag.ID,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

func UnlinkPostHashtags(tx *gorm.DB, post models.Post) error {
	return tx.Where("post_id = ?", post.ID).Delete(&models.PostHashtag{}).Error
}

func GetHashtag(tag string) (models.Hashtag, error) {
	tag = NormalizeHashtag(tag)

	var hashtag models.Hashtag
	if err := database.C.Where("tag = ?", tag).First(&hashtag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hashtag, fmt.Errorf("%w: hashtag %s", ErrNotFound, tag)
		}
		return hashtag, err
	}
	return hashtag, nil
}

// NormalizeHashtag lowercases a user supplied tag and restores the
// leading marker, so both "Go" and "#go" address the same row.
func NormalizeHashtag(tag string) string {
	tag = strings.ToLower(tag)
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}
