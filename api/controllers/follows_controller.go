package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"Inkwell/api/mailer"
	"Inkwell/api/models"
	"Inkwell/api/responses"
	httpctx "Inkwell/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowIndex godoc
// @Summary      Subscription feed
// @Description  Paginated posts by the authors the caller follows. An
// @Description  empty feed is an empty page, not an error.
// @Tags         follows
// @Produce      json
// @Param        page  query  int  false  "Page number"
// @Success      200  {object}  map[string]interface{}
// @Router       /follow/ [get]
// @Security     BearerAuth
func (server *Server) FollowIndex(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	post := models.Post{}
	total, err := post.CountFeedPosts(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	pg := server.paginate(total, parsePage(c))
	posts, err := post.FindFeedPosts(server.DB, uid, pg.Offset, pg.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"page_obj": responses.ToPageObject(pg, posts),
			"follow":   true,
		},
	})
}

// ProfileFollow godoc
// @Summary      Follow an author
// @Description  Idempotent: repeated follows never create duplicate
// @Description  relations. Following yourself is a no-op.
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Author username"
// @Success      302  {string}  string  "redirect to the author profile"
// @Failure      404  {object}  map[string]interface{}
// @Router       /profile/{username}/follow/ [post]
// @Security     BearerAuth
func (server *Server) ProfileFollow(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	author := models.User{}
	if _, err := author.FindUserByUsername(server.DB, c.Param("username")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user"})
		return
	}

	profileURL := fmt.Sprintf("/profile/%s/", author.Username)

	// Self-follow never creates a relation.
	if uid == author.ID {
		c.Redirect(http.StatusFound, profileURL)
		return
	}

	follow := models.Follow{AuthorID: author.ID, UserID: uid}
	result := server.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error following user"})
		return
	}

	if result.RowsAffected > 0 {
		follower := models.User{}
		if _, err := follower.FindUserByID(server.DB, uid); err == nil {
			go func(authorName, authorEmail, followerName string) {
				if err := mailer.SendFollowNotification(authorName, authorEmail, followerName); err != nil {
					log.Printf("follow notification to %s failed: %v", authorEmail, err)
				}
			}(author.Username, author.Email, follower.Username)
		}
	}

	c.Redirect(http.StatusFound, profileURL)
}

// ProfileUnfollow godoc
// @Summary      Unfollow an author
// @Description  Removing a relation that does not exist is a no-op.
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Author username"
// @Success      302  {string}  string  "redirect to the author profile"
// @Failure      404  {object}  map[string]interface{}
// @Router       /profile/{username}/unfollow/ [post]
// @Security     BearerAuth
func (server *Server) ProfileUnfollow(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	author := models.User{}
	if _, err := author.FindUserByUsername(server.DB, c.Param("username")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user"})
		return
	}

	err := server.DB.Where("author_id = ? AND user_id = ?", author.ID, uid).
		Delete(&models.Follow{}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unfollowing user"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}
