package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Post ordering is newest first by publication date; rows published at the
// same instant come back in insertion order.
const postOrder = "pub_date desc, id asc"

type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Text      string    `gorm:"text;not null;" json:"text"`
	PubDate   time.Time `gorm:"column:pub_date;index" json:"pub_date"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"author"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL;" json:"group,omitempty"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	ImagePath string    `gorm:"size:255" json:"image_path,omitempty"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p *Post) Prepare() {
	p.Text = html.EscapeString(strings.TrimSpace(p.Text))
	p.Author = User{}
	p.PubDate = time.Now()
	p.UpdatedAt = time.Now()
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Text == "" {
		errorMessages["Required_text"] = "Text is required"
	}
	if p.AuthorID == 0 {
		errorMessages["Required_author"] = "Author is required"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Create(p).Error; err != nil {
		return nil, err
	}
	if err := db.Model(p).Association("Author").Find(&p.Author); err != nil {
		return nil, err
	}
	if p.GroupID != nil {
		group := Group{}
		if err := db.Model(p).Association("Group").Find(&group); err != nil {
			return nil, err
		}
		p.Group = &group
	}
	return p, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	err := db.Preload("Author").Preload("Group").First(p, pid).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindAllPosts(db *gorm.DB, offset, limit int) ([]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").Preload("Group").
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (p *Post) CountAllPosts(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&Post{}).Count(&total).Error
	return total, err
}

func (p *Post) FindGroupPosts(db *gorm.DB, gid uint, offset, limit int) ([]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").Preload("Group").
		Where("group_id = ?", gid).
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (p *Post) CountGroupPosts(db *gorm.DB, gid uint) (int64, error) {
	var total int64
	err := db.Model(&Post{}).Where("group_id = ?", gid).Count(&total).Error
	return total, err
}

func (p *Post) FindAuthorPosts(db *gorm.DB, uid uint, offset, limit int) ([]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").Preload("Group").
		Where("author_id = ?", uid).
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (p *Post) CountAuthorPosts(db *gorm.DB, uid uint) (int64, error) {
	var total int64
	err := db.Model(&Post{}).Where("author_id = ?", uid).Count(&total).Error
	return total, err
}

// FindFeedPosts returns posts whose author is followed by the given user.
// A user that follows nobody gets an empty slice, not an error.
func (p *Post) FindFeedPosts(db *gorm.DB, uid uint, offset, limit int) ([]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").Preload("Group").
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", uid).
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (p *Post) CountFeedPosts(db *gorm.DB, uid uint) (int64, error) {
	var total int64
	err := db.Model(&Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", uid).Count(&total).Error
	return total, err
}

// UpdatePost changes text, group and image only. Author and publication
// date never change after creation.
func (p *Post) UpdatePost(db *gorm.DB) (*Post, error) {
	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"text":       p.Text,
		"group_id":   p.GroupID,
		"image_path": p.ImagePath,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	return p.FindPostByID(db, p.ID)
}

// DeletePost removes the post together with its comments.
func (p *Post) DeletePost(db *gorm.DB) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		comment := Comment{}
		if _, err := comment.DeletePostComments(tx, p.ID); err != nil {
			return err
		}
		result := tx.Delete(&Post{}, "id = ?", p.ID)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
