package responses

import (
	"time"

	"Inkwell/api/models"
	"Inkwell/api/utils/pagination"
)

type PostResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	PubDate   time.Time `json:"pub_date"`
	ImagePath string    `json:"image_path,omitempty"`

	Author AuthorResponse `json:"author"`
	Group  *GroupResponse `json:"group,omitempty"`
}

type AuthorResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type GroupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type CommentResponse struct {
	ID      uint           `json:"id"`
	Text    string         `json:"text"`
	PubDate time.Time      `json:"pub_date"`
	Author  AuthorResponse `json:"author"`
}

// PageObject is the paginated view of a listing handed to presentation,
// the page_obj of the view-model contract.
type PageObject struct {
	Number      int            `json:"number"`
	TotalPages  int            `json:"total_pages"`
	TotalItems  int64          `json:"total_items"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
	Posts       []PostResponse `json:"posts"`
}

func ToPostResponse(post *models.Post) PostResponse {
	resp := PostResponse{
		ID:        post.ID,
		Text:      post.Text,
		PubDate:   post.PubDate,
		ImagePath: post.ImagePath,
		Author: AuthorResponse{
			ID:       post.Author.ID,
			Username: post.Author.Username,
		},
	}
	if post.Group != nil {
		resp.Group = ToGroupResponse(post.Group)
	}
	return resp
}

func ToGroupResponse(group *models.Group) *GroupResponse {
	return &GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

func ToCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		PubDate: comment.PubDate,
		Author: AuthorResponse{
			ID:       comment.Author.ID,
			Username: comment.Author.Username,
		},
	}
}

func ToPageObject(page pagination.Page, posts []models.Post) PageObject {
	postResponses := make([]PostResponse, len(posts))
	for i := range posts {
		postResponses[i] = ToPostResponse(&posts[i])
	}
	return PageObject{
		Number:      page.Number,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrev,
		Posts:       postResponses,
	}
}
