// Package repository contains the persistence gateway: one interface and
// GORM implementation per entity. All reads and writes to the relational
// store go through this package.
package repository

import (
	"context"

	"kiroku/internal/models"

	"gorm.io/gorm"
)

// TodoRepository defines the interface for todo data operations
type TodoRepository interface {
	List(ctx context.Context) ([]*models.Todo, error)
	GetByID(ctx context.Context, id string) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo, categoryID string) error
	Update(ctx context.Context, todo *models.Todo) error
	ReplaceCategories(ctx context.Context, todo *models.Todo, categories []models.Category) error
	Delete(ctx context.Context, id string) error
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) List(ctx context.Context) ([]*models.Todo, error) {
	var todos []*models.Todo
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Order("created_at DESC").
		Find(&todos).Error
	return todos, err
}

func (r *todoRepository) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	var todo models.Todo
	err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&todo, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Create(ctx context.Context, todo *models.Todo, categoryID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if categoryID != "" {
			var category models.Category
			if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
				return err
			}
			todo.Categories = []models.Category{category}
		}
		return tx.Create(todo).Error
	})
}

func (r *todoRepository) Update(ctx context.Context, todo *models.Todo) error {
	// Save without touching the association table; the edge set is only
	// replaced through ReplaceCategories.
	return r.db.WithContext(ctx).Omit("Categories").Save(todo).Error
}

// ReplaceCategories swaps the todo's full tag set for the supplied one.
// An empty slice removes every association.
func (r *todoRepository) ReplaceCategories(ctx context.Context, todo *models.Todo, categories []models.Category) error {
	if err := r.db.WithContext(ctx).Model(todo).Association("Categories").Replace(categories); err != nil {
		return err
	}
	todo.Categories = categories
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var todo models.Todo
		if err := tx.First(&todo, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&todo).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&todo).Error
	})
}
