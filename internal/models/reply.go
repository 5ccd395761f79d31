package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reply represents a threaded reply to a comment.
type Reply struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CommentID string    `gorm:"not null;size:36;index" json:"commentId"`
	Content   string    `gorm:"not null" json:"content"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Reply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
