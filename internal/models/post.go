package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a blog entry with rich-text content and a cover image.
// CoverImageKey is the content-hash storage key of the uploaded cover;
// the public URL is derived from it at response time.
type Post struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	Content       string     `gorm:"not null" json:"content"`
	CoverImageKey string     `json:"coverImageKey"`
	CoverImageURL string     `gorm:"-" json:"coverImageURL,omitempty"`
	Likes         int        `gorm:"not null;default:0" json:"likes"`
	Categories    []Category `gorm:"many2many:post_categories" json:"categories"`
	Comments      []Comment  `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
