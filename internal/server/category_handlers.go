package server

import (
	"errors"

	"kiroku/internal/models"
	"kiroku/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("カテゴリの取得に失敗しました", err))
	}

	return c.JSON(categories)
}

// CreateCategory handles POST /api/categories.
// Names are not unique: posting the same name twice yields two rows.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("名前を入力してください"))
	}

	category := &models.Category{Name: req.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("カテゴリの作成に失敗しました", err))
	}

	return c.JSON(category)
}

// UpdateCategory handles PUT /api/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	var req struct {
		Name *string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return respondRepoError(c, err, "カテゴリが見つかりません", "データの取得に失敗しました")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("名前を入力してください"))
		}
		category.Name = *req.Name
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("カテゴリの更新に失敗しました", err))
	}

	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id.
// Deleting a category that todos or posts still reference is blocked.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryInUse) {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("カテゴリは使用中のため削除できません"))
		}
		return respondRepoError(c, err, "カテゴリが見つかりません", "カテゴリの削除に失敗しました")
	}

	return c.JSON(fiber.Map{"message": "カテゴリの削除に成功しました"})
}
