package services

import (
	"strings"
	"testing"

	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostContentBounds(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)

	viper.Set("content.max_length", 10)
	defer viper.Set("content.max_length", nil)

	_, err := NewPost(author.ID, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewPost(author.ID, strings.Repeat("a", 11))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	item, err := NewPost(author.ID, strings.Repeat("a", 10))
	require.NoError(t, err)

	_, err = EditPost(item.ID, author.Principal(), strings.Repeat("b", 11))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	edited, err := EditPost(item.ID, author.Principal(), strings.Repeat("b", 10))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("b", 10), edited.Content)
}

func TestNewPostLinksHashtags(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)

	item, err := NewPost(author.ID, "hello #world")
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	assert.ElementsMatch(t, []string{"#world"}, postHashtagSet(t, item.ID))
	assert.Equal(t, author.ID, item.AuthorID)
}

func TestNewPostDuplicateTagsIdempotent(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)

	item, err := NewPost(author.ID, "#Foo again #foo")
	require.NoError(t, err)

	assert.EqualValues(t, 1, countPostHashtags(t, item.ID))
	assert.ElementsMatch(t, []string{"#foo"}, postHashtagSet(t, item.ID))
}

func TestEditPostReplacesHashtags(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)

	item, err := NewPost(author.ID, "draft #x #y")
	require.NoError(t, err)

	updated, err := EditPost(item.ID, author.Principal(), "final #y #z")
	require.NoError(t, err)

	assert.Equal(t, "final #y #z", updated.Content)
	assert.NotNil(t, updated.EditedAt)
	assert.ElementsMatch(t, []string{"#y", "#z"}, postHashtagSet(t, item.ID))

	// The orphaned hashtag row stays; only the link goes away.
	var orphan models.Hashtag
	require.NoError(t, database.C.Where("tag = ?", "#x").First(&orphan).Error)
}

func TestEditPostIdempotent(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)

	item, err := NewPost(author.ID, "start")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = EditPost(item.ID, author.Principal(), "same #one #two #one")
		require.NoError(t, err)
	}

	assert.EqualValues(t, 2, countPostHashtags(t, item.ID))
}

func TestEditPostAuthorization(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)
	stranger := createTestAccount(t, "bob", models.RoleUser)
	moderator := createTestAccount(t, "mallory", models.RoleModerator)

	item, err := NewPost(author.ID, "original")
	require.NoError(t, err)

	_, err = EditPost(item.ID, stranger.Principal(), "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = EditPost(9999, moderator.Principal(), "anything")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := EditPost(item.ID, moderator.Principal(), "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Content)
}

func TestDeletePostAuthorization(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)
	stranger := createTestAccount(t, "bob", models.RoleUser)

	item, err := NewPost(author.ID, "to delete")
	require.NoError(t, err)

	assert.ErrorIs(t, DeletePost(item.ID, stranger.Principal()), ErrForbidden)
	assert.ErrorIs(t, DeletePost(9999, author.Principal()), ErrNotFound)
	require.NoError(t, DeletePost(item.ID, author.Principal()))
}

func TestDeletePostCascades(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)
	rater := createTestAccount(t, "bob", models.RoleUser)

	item, err := NewPost(author.ID, "rated #gone")
	require.NoError(t, err)
	require.NoError(t, RatePost(item.ID, rater.ID, models.RatingUpvote))

	require.NoError(t, DeletePost(item.ID, author.Principal()))

	_, err = GetPost(item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 0, countPostHashtags(t, item.ID))

	var ratings int64
	require.NoError(t, database.C.Model(&models.Rating{}).Where("post_id = ?", item.ID).Count(&ratings).Error)
	assert.EqualValues(t, 0, ratings)

	// Hashtag rows survive post deletion.
	var hashtag models.Hashtag
	require.NoError(t, database.C.Where("tag = ?", "#gone").First(&hashtag).Error)
}

func TestListPostByHashtag(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)

	tagged, err := NewPost(author.ID, "about #golang")
	require.NoError(t, err)
	_, err = NewPost(author.ID, "unrelated")
	require.NoError(t, err)

	items, err := ListPost(FilterPostWithHashtag(database.C, "golang"), Pagination{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, tagged.ID, items[0].ID)
}

func TestListPostOrderByRating(t *testing.T) {
	setupTestDatabase(t)
	author := createTestAccount(t, "alice", models.RoleUser)
	rater := createTestAccount(t, "bob", models.RoleUser)

	low, err := NewPost(author.ID, "low")
	require.NoError(t, err)
	high, err := NewPost(author.ID, "high")
	require.NoError(t, err)

	require.NoError(t, RatePost(high.ID, rater.ID, models.RatingUpvote))
	require.NoError(t, RatePost(low.ID, rater.ID, models.RatingDownvote))

	items, err := ListPost(FilterPostWithAuthor(database.C, author.ID), Pagination{
		Order:   OrderDesc,
		OrderBy: OrderByRating,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, high.ID, items[0].ID)
	assert.EqualValues(t, 1, items[0].TotalRating)
	assert.EqualValues(t, -1, items[1].TotalRating)
}

func TestFeedFollowsSubscriptions(t *testing.T) {
	setupTestDatabase(t)
	reader := createTestAccount(t, "reader", models.RoleUser)
	followed := createTestAccount(t, "followed", models.RoleUser)
	ignored := createTestAccount(t, "ignored", models.RoleUser)

	inFeed, err := NewPost(followed.ID, "from a subscription")
	require.NoError(t, err)
	_, err = NewPost(ignored.ID, "not followed")
	require.NoError(t, err)

	_, err = SubscribeToAccount(reader.ID, followed.ID)
	require.NoError(t, err)

	items, err := ListPost(FilterPostWithSubscriptionsOf(database.C, reader.ID), Pagination{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, inFeed.ID, items[0].ID)
}
