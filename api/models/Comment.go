package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID       uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Text     string    `gorm:"text;not null;" json:"text"`
	PubDate  time.Time `gorm:"column:pub_date;index" json:"pub_date"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`
}

func (c *Comment) Prepare() {
	c.ID = 0
	c.Text = html.EscapeString(strings.TrimSpace(c.Text))
	c.Author = User{}
	c.PubDate = time.Now()
}

func (c *Comment) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if c.Text == "" {
		errorMessages["Required_text"] = "Text is required"
	}
	if c.AuthorID == 0 {
		errorMessages["Required_author"] = "Author is required"
	}
	if c.PostID == 0 {
		errorMessages["Required_post"] = "Post is required"
	}
	return errorMessages
}

func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	err := db.Create(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Comment) GetPostComments(db *gorm.DB, pid uint) (*[]Comment, error) {
	comments := []Comment{}
	err := db.Preload("Author").Where("post_id = ?", pid).
		Order("pub_date desc, id asc").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return &comments, nil
}

// When a post is deleted, its comments go too.
func (c *Comment) DeletePostComments(db *gorm.DB, pid uint) (int64, error) {
	result := db.Where("post_id = ?", pid).Delete(&Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
