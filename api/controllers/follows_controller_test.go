package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"Inkwell/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followCount(t *testing.T, server *Server) int64 {
	t.Helper()
	var count int64
	require.NoError(t, server.DB.Model(&models.Follow{}).Count(&count).Error)
	return count
}

func TestFollowIsIdempotent(t *testing.T) {
	server := newTestServer(t)
	createTestUser(t, server.DB, "steven")
	follower := createTestUser(t, server.DB, "martin")

	token := bearerToken(t, follower.ID)
	w := submitForm(server, "/profile/steven/follow/", nil, token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/steven/", w.Header().Get("Location"))
	assert.Equal(t, int64(1), followCount(t, server))

	// Following again must not create a duplicate pair.
	w = submitForm(server, "/profile/steven/follow/", nil, token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, int64(1), followCount(t, server))
}

func TestSelfFollowCreatesNothing(t *testing.T) {
	server := newTestServer(t)
	user := createTestUser(t, server.DB, "steven")

	w := submitForm(server, "/profile/steven/follow/", nil, bearerToken(t, user.ID))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/steven/", w.Header().Get("Location"))
	assert.Equal(t, int64(0), followCount(t, server))
}

func TestUnfollowRemovesRelation(t *testing.T) {
	server := newTestServer(t)
	author := createTestUser(t, server.DB, "steven")
	follower := createTestUser(t, server.DB, "martin")
	require.NoError(t, server.DB.Create(&models.Follow{AuthorID: author.ID, UserID: follower.ID}).Error)

	w := submitForm(server, "/profile/steven/unfollow/", nil, bearerToken(t, follower.ID))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, int64(0), followCount(t, server))
}

func TestUnfollowWithoutRelationIsNoOp(t *testing.T) {
	server := newTestServer(t)
	createTestUser(t, server.DB, "steven")
	follower := createTestUser(t, server.DB, "martin")

	w := submitForm(server, "/profile/steven/unfollow/", nil, bearerToken(t, follower.ID))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/steven/", w.Header().Get("Location"))
	assert.Equal(t, int64(0), followCount(t, server))
}

func TestFollowRequiresLogin(t *testing.T) {
	server := newTestServer(t)
	createTestUser(t, server.DB, "steven")

	w := submitForm(server, "/profile/steven/follow/", nil, "")
	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/auth/login/?next="), "unexpected location %q", location)
	assert.Contains(t, location, url.QueryEscape("/profile/steven/follow/"))
	assert.Equal(t, int64(0), followCount(t, server))
}

func TestFollowUnknownAuthorIs404(t *testing.T) {
	server := newTestServer(t)
	follower := createTestUser(t, server.DB, "martin")

	w := submitForm(server, "/profile/ghost/follow/", nil, bearerToken(t, follower.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedShowsOnlyFollowedAuthors(t *testing.T) {
	server := newTestServer(t)
	followed := createTestUser(t, server.DB, "steven")
	other := createTestUser(t, server.DB, "martin")
	reader := createTestUser(t, server.DB, "reader")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, server.DB, followed, nil, "from steven", base)
	createTestPost(t, server.DB, other, nil, "from martin", base.Add(time.Minute))

	require.NoError(t, server.DB.Create(&models.Follow{AuthorID: followed.ID, UserID: reader.ID}).Error)

	w := getRequest(server, "/follow/", bearerToken(t, reader.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	posts := pageObjPosts(t, decodeResponse(t, w.Body.Bytes()))
	require.Len(t, posts, 1)
	assert.Equal(t, "from steven", posts[0].(map[string]interface{})["text"])
}

func TestFeedIsEmptyWhenFollowingNobody(t *testing.T) {
	server := newTestServer(t)
	author := createTestUser(t, server.DB, "steven")
	reader := createTestUser(t, server.DB, "reader")
	createTestPost(t, server.DB, author, nil, "unseen", time.Now())

	w := getRequest(server, "/follow/", bearerToken(t, reader.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, pageObjPosts(t, decodeResponse(t, w.Body.Bytes())), 0)
}

func TestFeedRequiresLogin(t *testing.T) {
	server := newTestServer(t)

	w := getRequest(server, "/follow/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login/?next="))
}
