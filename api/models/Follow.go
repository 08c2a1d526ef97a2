package models

import (
	"time"

	"gorm.io/gorm"
)

// Follow is a directed subscription: user follows author. The composite
// unique index keeps the relation free of duplicate pairs even under
// concurrent follow requests; the write path pairs it with an
// ON CONFLICT DO NOTHING create.
type Follow struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique" json:"author_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func IsFollowing(db *gorm.DB, uid, authorID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", uid, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
