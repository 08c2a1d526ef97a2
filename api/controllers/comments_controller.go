package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"Inkwell/api/models"
	httpctx "Inkwell/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddComment godoc
// @Summary      Comment on a post
// @Description  The comment author is always the authenticated caller.
// @Description  Invalid input falls through to the detail redirect with
// @Description  nothing written.
// @Tags         comments
// @Accept       mpfd
// @Produce      json
// @Param        id    path      int     true  "Post ID"
// @Param        text  formData  string  true  "Comment text"
// @Success      302  {string}  string  "redirect to post detail"
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/comment/ [post]
// @Security     BearerAuth
func (server *Server) AddComment(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	pid, err := parsePostID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "error": "Invalid post ID"})
		return
	}

	post := models.Post{}
	if _, err := post.FindPostByID(server.DB, pid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post"})
		return
	}

	comment := models.Comment{
		Text:     c.PostForm("text"),
		AuthorID: uid,
		PostID:   post.ID,
	}
	comment.Prepare()

	if errs := comment.Validate(); len(errs) == 0 {
		if _, err := comment.SaveComment(server.DB); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving comment"})
			return
		}
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}
