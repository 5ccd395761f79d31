package repository

import (
	"context"

	"kiroku/internal/models"

	"gorm.io/gorm"
)

// ReplyRepository defines the interface for reply data operations
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, id string) (*models.Reply, error)
	Like(ctx context.Context, id string) error
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new reply repository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) GetByID(ctx context.Context, id string) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).First(&reply, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *replyRepository) Like(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
