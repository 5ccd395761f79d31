package server

import (
	"context"
	"errors"
	"fmt"

	"kiroku/internal/cache"
	"kiroku/internal/models"
	"kiroku/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BulkDeleteFailure names one id that could not be deleted and why.
type BulkDeleteFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// bulkDelete runs deleteFn for every id, continuing past failures. The
// caller gets a single aggregated result: all ids deleted, or one error
// message plus the per-id breakdown. There is no rollback; a partial
// failure leaves the successful deletes in place.
func (s *Server) bulkDelete(c *fiber.Ctx, label string, deleteFn func(ctx context.Context, id string) error) error {
	ctx := c.UserContext()

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}
	if len(req.IDs) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("IDを指定してください"))
	}

	deleted := make([]string, 0, len(req.IDs))
	var failed []BulkDeleteFailure
	for _, id := range req.IDs {
		if err := deleteFn(ctx, id); err != nil {
			failed = append(failed, BulkDeleteFailure{ID: id, Reason: bulkFailureReason(err, label)})
			continue
		}
		deleted = append(deleted, id)
	}

	if len(failed) > 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   fmt.Sprintf("%d件の%sの削除に失敗しました", len(failed), label),
			"deleted": deleted,
			"failed":  failed,
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%d件の%sを削除しました", len(deleted), label),
		"deleted": deleted,
	})
}

func bulkFailureReason(err error, label string) string {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return label + "が見つかりません"
	case errors.Is(err, repository.ErrCategoryInUse):
		return "カテゴリは使用中のため削除できません"
	default:
		return label + "の削除に失敗しました"
	}
}

// BulkDeleteTodos handles POST /api/admin/todos/bulk-delete
func (s *Server) BulkDeleteTodos(c *fiber.Ctx) error {
	return s.bulkDelete(c, "ToDo", s.todoRepo.Delete)
}

// BulkDeleteCategories handles POST /api/admin/categories/bulk-delete
func (s *Server) BulkDeleteCategories(c *fiber.Ctx) error {
	return s.bulkDelete(c, "カテゴリ", s.categoryRepo.Delete)
}

// BulkDeletePosts handles POST /api/admin/posts/bulk-delete
func (s *Server) BulkDeletePosts(c *fiber.Ctx) error {
	return s.bulkDelete(c, "投稿記事", func(ctx context.Context, id string) error {
		if err := s.postRepo.Delete(ctx, id); err != nil {
			return err
		}
		cache.InvalidatePost(ctx, id)
		return nil
	})
}
