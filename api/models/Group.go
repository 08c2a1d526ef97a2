package models

import (
	"html"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Group is a named category a post may optionally belong to. Groups do not
// own posts; posts reference groups and the reverse direction is a query.
type Group struct {
	ID          uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"text" json:"description"`
}

func (g *Group) Prepare() {
	g.Title = html.EscapeString(strings.TrimSpace(g.Title))
	g.Slug = strings.ToLower(strings.TrimSpace(g.Slug))
	g.Description = html.EscapeString(strings.TrimSpace(g.Description))
}

func (g *Group) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if g.Title == "" {
		errorMessages["Required_title"] = "Title is required"
	}
	if g.Slug == "" {
		errorMessages["Required_slug"] = "Slug is required"
	}
	if g.Slug != "" && !slugPattern.MatchString(g.Slug) {
		errorMessages["Invalid_slug"] = "Slug may only contain letters, numbers, hyphens and underscores"
	}
	return errorMessages
}

func (g *Group) SaveGroup(db *gorm.DB) (*Group, error) {
	if err := db.Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindAllGroups(db *gorm.DB) ([]Group, error) {
	groups := []Group{}
	err := db.Order("title asc").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (g *Group) FindGroupBySlug(db *gorm.DB, slug string) (*Group, error) {
	err := db.Where("slug = ?", strings.ToLower(slug)).First(g).Error
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindGroupByID(db *gorm.DB, gid uint) (*Group, error) {
	err := db.First(g, gid).Error
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGroup detaches the group from its posts before removing it, so
// posts survive group deletion with a null group. Done in application code
// rather than relying on driver-level SET NULL so the behavior holds on
// every database the tests run against.
func (g *Group) DeleteGroup(db *gorm.DB) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Post{}).Where("group_id = ?", g.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&Group{}, "id = ?", g.ID)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
