package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post. Likes only ever increment.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostID    string    `gorm:"not null;size:36;index" json:"postId"`
	Content   string    `gorm:"not null" json:"content"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	Replies   []Reply   `gorm:"foreignKey:CommentID" json:"replies,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
