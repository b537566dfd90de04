package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDatabase points database.C at a fresh in-memory store. The
// single connection keeps the whole database alive for the test.
func setupTestDatabase(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigration(db))
	database.C = db
}

func createTestAccount(t *testing.T, login string, role models.AccountRole) models.Account {
	t.Helper()

	account, err := CreateAccount(login, "password123")
	require.NoError(t, err)

	if role != models.RoleUser {
		account.Role = role
		require.NoError(t, database.C.Save(&account).Error)
	}

	return account
}

func countPostHashtags(t *testing.T, postID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.C.Model(&models.PostHashtag{}).
		Where("post_id = ?", postID).
		Count(&count).Error)
	return count
}

func postHashtagSet(t *testing.T, postID uint) []string {
	t.Helper()

	item, err := GetPost(postID)
	require.NoError(t, err)

	tags := make([]string, 0, len(item.Hashtags))
	for _, hashtag := range item.Hashtags {
		tags = append(tags, hashtag.Tag)
	}
	return tags
}
