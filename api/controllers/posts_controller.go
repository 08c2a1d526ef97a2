package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"Inkwell/api/cache"
	"Inkwell/api/models"
	"Inkwell/api/responses"
	httpctx "Inkwell/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The index listing is whole-page cached with a short expiry and
// explicitly invalidated on every post write.
const indexCacheTTL = 20 * time.Second

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

func parsePostID(c *gin.Context) (uint, error) {
	pid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(pid), nil
}

func invalidateIndexCache() {
	_ = cache.DeleteByPrefix(context.Background(), "index:")
}

// Index godoc
// @Summary      Latest posts
// @Description  Paginated listing of all posts, newest first
// @Tags         posts
// @Produce      json
// @Param        page  query  int  false  "Page number (out-of-range clamps)"
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (server *Server) Index(c *gin.Context) {
	page := parsePage(c)

	ctx := context.Background()
	cacheKey := fmt.Sprintf("index:page:%d", page)
	if cached, err := cache.Get(ctx, cacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	post := models.Post{}
	total, err := post.CountAllPosts(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	pg := server.paginate(total, page)
	posts, err := post.FindAllPosts(server.DB, pg.Offset, pg.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve posts"})
		return
	}

	respBody := gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"page_obj": responses.ToPageObject(pg, posts),
			"index":    true,
		},
	}

	if jsonBytes, err := json.Marshal(respBody); err == nil {
		_ = cache.Set(ctx, cacheKey, jsonBytes, indexCacheTTL)
	}

	c.JSON(http.StatusOK, respBody)
}

// GroupPosts godoc
// @Summary      Posts of one group
// @Tags         posts
// @Produce      json
// @Param        slug  path   string  true   "Group slug"
// @Param        page  query  int     false  "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /group/{slug}/ [get]
func (server *Server) GroupPosts(c *gin.Context) {
	group := models.Group{}
	if _, err := group.FindGroupBySlug(server.DB, c.Param("slug")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving group"})
		return
	}

	post := models.Post{}
	total, err := post.CountGroupPosts(server.DB, group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	pg := server.paginate(total, parsePage(c))
	posts, err := post.FindGroupPosts(server.DB, group.ID, pg.Offset, pg.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"group":    responses.ToGroupResponse(&group),
			"page_obj": responses.ToPageObject(pg, posts),
		},
	})
}

// Profile godoc
// @Summary      Author profile
// @Description  Paginated posts of one author plus follow status for
// @Description  authenticated callers
// @Tags         posts
// @Produce      json
// @Param        username  path   string  true   "Author username"
// @Param        page      query  int     false  "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /profile/{username}/ [get]
func (server *Server) Profile(c *gin.Context) {
	user := models.User{}
	if _, err := user.FindUserByUsername(server.DB, c.Param("username")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user"})
		return
	}

	post := models.Post{}
	total, err := post.CountAuthorPosts(server.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	pg := server.paginate(total, parsePage(c))
	posts, err := post.FindAuthorPosts(server.DB, user.ID, pg.Offset, pg.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve posts"})
		return
	}

	// Follow status is only meaningful for an authenticated viewer.
	var following interface{}
	if viewerID, err := server.optionalViewerID(c); err == nil {
		isFollowing, err := models.IsFollowing(server.DB, viewerID, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking follow status"})
			return
		}
		following = isFollowing
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"username":    user.Username,
			"posts_count": total,
			"page_obj":    responses.ToPageObject(pg, posts),
			"following":   following,
		},
	})
}

// PostDetail godoc
// @Summary      Post detail
// @Description  One post with its comments and an empty comment form
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/ [get]
func (server *Server) PostDetail(c *gin.Context) {
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

	comment := models.Comment{}
	comments, err := comment.GetPostComments(server.DB, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving comments"})
		return
	}

	commentResponses := make([]responses.CommentResponse, len(*comments))
	for i := range *comments {
		commentResponses[i] = responses.ToCommentResponse(&(*comments)[i])
	}

	postsCount, err := post.CountAuthorPosts(server.DB, post.AuthorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to count posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"post":        responses.ToPostResponse(&post),
			"posts_count": postsCount,
			"comments":    commentResponses,
			"form":        emptyCommentForm(),
		},
	})
}

// CreatePostForm godoc
// @Summary      New post form
// @Tags         posts
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /create/ [get]
// @Security     BearerAuth
func (server *Server) CreatePostForm(c *gin.Context) {
	groups, err := server.groupChoices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"form":    postForm("", "", nil),
			"is_edit": false,
			"groups":  groups,
		},
	})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  The author is always the authenticated caller, never the payload
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        text   formData  string  true   "Post text"
// @Param        group  formData  string  false  "Group slug or id"
// @Param        image  formData  file    false  "Image attachment"
// @Success      302  {string}  string  "redirect to the author profile"
// @Success      200  {object}  map[string]interface{}  "form re-display on invalid input"
// @Router       /create/ [post]
// @Security     BearerAuth
func (server *Server) CreatePost(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": http.StatusUnauthorized, "error": "Unauthorized"})
		return
	}

	text := c.PostForm("text")
	groupParam := c.PostForm("group")

	errList := map[string]string{}

	groupID, errs := server.resolveGroupChoice(groupParam)
	for k, v := range errs {
		errList[k] = v
	}

	imagePath, errs := server.storePostImage(c)
	for k, v := range errs {
		errList[k] = v
	}

	post := models.Post{Text: text, AuthorID: uid, GroupID: groupID, ImagePath: imagePath}
	post.Prepare()
	for k, v := range post.Validate() {
		errList[k] = v
	}

	if len(errList) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"response": gin.H{
				"form":    postForm(text, groupParam, errList),
				"is_edit": false,
			},
		})
		return
	}

	if _, err := post.SavePost(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		return
	}

	invalidateIndexCache()

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", post.Author.Username))
}

// EditPostForm godoc
// @Summary      Edit form, pre-populated from the existing post
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Success      302  {string}  string  "non-author redirect to post detail"
// @Router       /posts/{id}/edit/ [get]
// @Security     BearerAuth
func (server *Server) EditPostForm(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)

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

	// Only the author may edit. Anyone else is sent back to the post,
	// not shown an error page.
	if post.AuthorID != uid {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	groupValue := ""
	if post.Group != nil {
		groupValue = post.Group.Slug
	}

	groups, err := server.groupChoices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"form":    postForm(post.Text, groupValue, nil),
			"is_edit": true,
			"groups":  groups,
		},
	})
}

// EditPost godoc
// @Summary      Update a post
// @Description  Text, group and image only; author and publication date are immutable
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      302  {string}  string  "redirect to post detail"
// @Success      200  {object}  map[string]interface{}  "form re-display on invalid input"
// @Router       /posts/{id}/edit/ [post]
// @Security     BearerAuth
func (server *Server) EditPost(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)

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

	if post.AuthorID != uid {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	text := c.PostForm("text")
	groupParam := c.PostForm("group")

	errList := map[string]string{}

	groupID, errs := server.resolveGroupChoice(groupParam)
	for k, v := range errs {
		errList[k] = v
	}

	imagePath, errs := server.storePostImage(c)
	for k, v := range errs {
		errList[k] = v
	}

	updated := models.Post{Text: text, GroupID: groupID, ImagePath: imagePath}
	updated.Prepare()
	updated.ID = post.ID
	updated.AuthorID = post.AuthorID
	if updated.ImagePath == "" {
		updated.ImagePath = post.ImagePath
	}
	for k, v := range updated.Validate() {
		errList[k] = v
	}

	if len(errList) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"response": gin.H{
				"form":    postForm(text, groupParam, errList),
				"is_edit": true,
			},
		})
		return
	}

	if _, err := updated.UpdatePost(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
		return
	}

	invalidateIndexCache()

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Author only; comments go with the post
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      302  {string}  string  "redirect to the author profile"
// @Router       /posts/{id}/delete/ [post]
// @Security     BearerAuth
func (server *Server) DeletePost(c *gin.Context) {
	uid, _ := httpctx.CurrentUserID(c)

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

	if post.AuthorID != uid {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	if _, err := post.DeletePost(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post"})
		return
	}

	invalidateIndexCache()

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", post.Author.Username))
}
