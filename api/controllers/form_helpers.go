package controllers

import (
	"errors"
	"strconv"
	"strings"

	"Inkwell/api/auth"
	"Inkwell/api/models"
	"Inkwell/api/responses"
	"Inkwell/api/utils/pagination"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (server *Server) paginate(total int64, page int) pagination.Page {
	size := server.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	return pagination.Paginate(total, size, page)
}

// optionalViewerID identifies the caller on public pages, where a missing
// or invalid session is not an error.
func (server *Server) optionalViewerID(c *gin.Context) (uint, error) {
	uid, err := auth.ExtractTokenID(c.Request)
	if err != nil {
		return 0, err
	}
	var user models.User
	if err := server.DB.Select("id").First(&user, uid).Error; err != nil {
		return 0, err
	}
	return uid, nil
}

// resolveGroupChoice maps a submitted group value, slug or numeric id, to
// a group reference. An empty value means no group; a value that matches
// nothing is a field error, not a lookup failure.
func (server *Server) resolveGroupChoice(param string) (*uint, map[string]string) {
	trimmed := strings.TrimSpace(param)
	if trimmed == "" {
		return nil, nil
	}

	group := models.Group{}
	if _, err := group.FindGroupBySlug(server.DB, trimmed); err == nil {
		return &group.ID, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, map[string]string{"Invalid_group": "Error resolving group"}
	}

	if gid, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		if _, err := group.FindGroupByID(server.DB, uint(gid)); err == nil {
			return &group.ID, nil
		}
	}

	return nil, map[string]string{"Invalid_group": "Group does not exist"}
}

func (server *Server) groupChoices() ([]responses.GroupResponse, error) {
	group := models.Group{}
	groups, err := group.FindAllGroups(server.DB)
	if err != nil {
		return nil, err
	}
	choices := make([]responses.GroupResponse, len(groups))
	for i := range groups {
		choices[i] = *responses.ToGroupResponse(&groups[i])
	}
	return choices, nil
}

// postForm is the form view-model for the create/edit pages: submitted
// values plus field errors, ready for re-display.
func postForm(text, group string, errs map[string]string) gin.H {
	if errs == nil {
		errs = map[string]string{}
	}
	return gin.H{
		"values": gin.H{
			"text":  text,
			"group": group,
		},
		"errors": errs,
	}
}

func emptyCommentForm() gin.H {
	return gin.H{
		"values": gin.H{"text": ""},
		"errors": map[string]string{},
	}
}
