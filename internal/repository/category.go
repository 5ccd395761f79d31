package repository

import (
	"context"
	"errors"

	"kiroku/internal/models"

	"gorm.io/gorm"
)

// ErrCategoryInUse is returned when deleting a category that is still
// referenced by todos or posts. Deletion is blocked rather than cascaded.
var ErrCategoryInUse = errors.New("category is still referenced")

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	// Names are intentionally not deduplicated; two rows may share a name.
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category. It fails with ErrCategoryInUse while any todo
// or post still references it.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}

		var todoRefs int64
		if err := tx.Table("todo_categories").Where("category_id = ?", id).Count(&todoRefs).Error; err != nil {
			return err
		}
		var postRefs int64
		if err := tx.Table("post_categories").Where("category_id = ?", id).Count(&postRefs).Error; err != nil {
			return err
		}
		if todoRefs+postRefs > 0 {
			return ErrCategoryInUse
		}

		return tx.Delete(&category).Error
	})
}
