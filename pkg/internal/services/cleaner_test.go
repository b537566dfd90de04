package services

import (
	"testing"
	"time"

	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoAutoDatabaseCleanup(t *testing.T) {
	setupTestDatabase(t)
	alice := createTestAccount(t, "alice", models.RoleUser)

	live, err := NewPost(alice.ID, "kept #kept")
	require.NoError(t, err)

	// Simulate a crash that left join and rating rows behind a post
	// that no longer exists.
	require.NoError(t, database.C.Create(&models.PostHashtag{PostID: 9999, HashtagID: 1}).Error)
	require.NoError(t, database.C.Create(&models.Rating{AccountID: alice.ID, PostID: 9999, Value: 1}).Error)

	expired, err := IssueSession(alice.ID)
	require.NoError(t, err)
	require.NoError(t, database.C.Model(&models.AuthSession{}).
		Where("token = ?", expired.Token).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)
	kept, err := IssueSession(alice.ID)
	require.NoError(t, err)

	DoAutoDatabaseCleanup()

	assert.EqualValues(t, 0, countPostHashtags(t, 9999))
	var orphanRatings int64
	require.NoError(t, database.C.Model(&models.Rating{}).Where("post_id = ?", 9999).Count(&orphanRatings).Error)
	assert.EqualValues(t, 0, orphanRatings)

	// Live data is untouched.
	assert.EqualValues(t, 1, countPostHashtags(t, live.ID))

	account, err := ResolveSession(expired.Token)
	require.NoError(t, err)
	assert.Nil(t, account)
	var sessions int64
	require.NoError(t, database.C.Model(&models.AuthSession{}).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions)

	account, err = ResolveSession(kept.Token)
	require.NoError(t, err)
	require.NotNil(t, account)
}
