package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"kiroku/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTodoCreateThenGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	due := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	todo := &models.Todo{
		Title:       "牛乳を買う",
		Description: "スーパーで",
		DueDate:     due,
		Priority:    models.PriorityHigh,
		Completed:   false,
	}
	require.NoError(t, repo.Create(ctx, todo, ""))
	require.NotEmpty(t, todo.ID, "id is assigned on create")

	got, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "牛乳を買う", got.Title)
	assert.Equal(t, "スーパーで", got.Description)
	assert.True(t, got.DueDate.Equal(due))
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.False(t, got.Completed)
}

func TestTodoCreateWithCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	category := models.Category{Name: "買い物"}
	require.NoError(t, db.Create(&category).Error)

	todo := &models.Todo{Title: "買い物リスト1", DueDate: time.Now(), Priority: models.PriorityMedium}
	require.NoError(t, repo.Create(ctx, todo, category.ID))

	got, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "買い物", got.Categories[0].Name)
}

func TestTodoCreateWithMissingCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	todo := &models.Todo{Title: "x", DueDate: time.Now(), Priority: models.PriorityLow}
	err := repo.Create(ctx, todo, "no-such-id")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTodoDeleteThenGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	todo := &models.Todo{Title: "消すToDo", DueDate: time.Now(), Priority: models.PriorityLow}
	require.NoError(t, repo.Create(ctx, todo, ""))

	require.NoError(t, repo.Delete(ctx, todo.ID))

	_, err := repo.GetByID(ctx, todo.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTodoDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTodoRepository(db)

	err := repo.Delete(context.Background(), "no-such-id")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTodoReplaceCategories(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	first := models.Category{Name: "仕事"}
	second := models.Category{Name: "家事"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	todo := &models.Todo{Title: "タグ替え", DueDate: time.Now(), Priority: models.PriorityMedium}
	require.NoError(t, repo.Create(ctx, todo, first.ID))

	// Replace, not merge: the old tag disappears.
	require.NoError(t, repo.ReplaceCategories(ctx, todo, []models.Category{second}))
	got, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, second.ID, got.Categories[0].ID)

	// Replacing with the empty set removes every association.
	require.NoError(t, repo.ReplaceCategories(ctx, todo, []models.Category{}))
	got, err = repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
}

func TestTodoUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTodoRepository(db)
	ctx := context.Background()

	todo := &models.Todo{Title: "前", DueDate: time.Now(), Priority: models.PriorityLow}
	require.NoError(t, repo.Create(ctx, todo, ""))

	todo.Title = "後"
	todo.Completed = true
	require.NoError(t, repo.Update(ctx, todo))

	got, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "後", got.Title)
	assert.True(t, got.Completed)
}
