package models

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) User {
	t.Helper()
	user := User{Username: username, Email: username + "@example.com", Password: "password123"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestDeleteGroupNullifiesPostsWithoutDeletingThem(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "steven")

	group := Group{Title: "Travel", Slug: "travel"}
	require.NoError(t, db.Create(&group).Error)

	post := Post{Text: "trip", AuthorID: author.ID, GroupID: &group.ID, PubDate: time.Now()}
	require.NoError(t, db.Create(&post).Error)

	deleted, err := group.DeleteGroup(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var stored Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Nil(t, stored.GroupID)
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "steven")

	post := Post{Text: "doomed", AuthorID: author.ID, PubDate: time.Now()}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&Comment{Text: "me too", AuthorID: author.ID, PostID: post.ID, PubDate: time.Now()}).Error)

	deleted, err := post.DeletePost(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var comments int64
	db.Model(&Comment{}).Count(&comments)
	assert.Equal(t, int64(0), comments)
}

func TestFeedQueriesFollowRelation(t *testing.T) {
	db := newTestDB(t)
	followed := seedUser(t, db, "steven")
	other := seedUser(t, db, "martin")
	reader := seedUser(t, db, "reader")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&Post{Text: "in feed", AuthorID: followed.ID, PubDate: base}).Error)
	require.NoError(t, db.Create(&Post{Text: "not in feed", AuthorID: other.ID, PubDate: base.Add(time.Minute)}).Error)
	require.NoError(t, db.Create(&Follow{AuthorID: followed.ID, UserID: reader.ID}).Error)

	post := Post{}
	feed, err := post.FindFeedPosts(db, reader.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "in feed", feed[0].Text)

	total, err := post.CountFeedPosts(db, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Nobody followed, nothing in the feed.
	feed, err = post.FindFeedPosts(db, other.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, feed, 0)
}

func TestIsFollowing(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "steven")
	user := seedUser(t, db, "martin")

	following, err := IsFollowing(db, user.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, db.Create(&Follow{AuthorID: author.ID, UserID: user.ID}).Error)

	following, err = IsFollowing(db, user.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowUniqueIndexRejectsDuplicatePairs(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "steven")
	user := seedUser(t, db, "martin")

	require.NoError(t, db.Create(&Follow{AuthorID: author.ID, UserID: user.ID}).Error)
	err := db.Create(&Follow{AuthorID: author.ID, UserID: user.ID}).Error
	assert.Error(t, err)
}

func TestPostOrderingIsNewestFirstWithStableTies(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "steven")

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&Post{Text: "tied first", AuthorID: author.ID, PubDate: ts}).Error)
	require.NoError(t, db.Create(&Post{Text: "tied second", AuthorID: author.ID, PubDate: ts}).Error)
	require.NoError(t, db.Create(&Post{Text: "newer", AuthorID: author.ID, PubDate: ts.Add(time.Hour)}).Error)

	post := Post{}
	posts, err := post.FindAllPosts(db, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newer", posts[0].Text)
	assert.Equal(t, "tied first", posts[1].Text)
	assert.Equal(t, "tied second", posts[2].Text)
}

func TestPostValidateRequiresText(t *testing.T) {
	post := Post{AuthorID: 1}
	post.Prepare()
	errs := post.Validate()
	assert.Contains(t, errs, "Required_text")

	post = Post{Text: "hello", AuthorID: 1}
	post.Prepare()
	assert.Empty(t, post.Validate())
}
