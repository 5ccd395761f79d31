package server

import (
	"kiroku/internal/cache"
	"kiroku/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID := c.Params("id")

	// Verify post exists
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return respondRepoError(c, err, "投稿記事が見つかりません", "データの取得に失敗しました")
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("コメントの取得に失敗しました", err))
	}

	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:id/comments (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID := c.Params("id")

	// Verify post exists
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return respondRepoError(c, err, "投稿記事が見つかりません", "データの取得に失敗しました")
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("内容を入力してください"))
	}

	comment := &models.Comment{
		PostID:  postID,
		Content: req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("コメントの作成に失敗しました", err))
	}

	cache.InvalidatePost(ctx, postID)
	return c.JSON(comment)
}

// LikeComment handles POST /api/comments/:id/like (protected)
func (s *Server) LikeComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	if err := s.commentRepo.Like(ctx, id); err != nil {
		return respondRepoError(c, err, "コメントが見つかりません", "いいねに失敗しました")
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return respondRepoError(c, err, "コメントが見つかりません", "データの取得に失敗しました")
	}

	cache.InvalidatePost(ctx, comment.PostID)
	return c.JSON(comment)
}

// CreateReply handles POST /api/comments/:id/replies (protected)
func (s *Server) CreateReply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	commentID := c.Params("id")

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return respondRepoError(c, err, "コメントが見つかりません", "データの取得に失敗しました")
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("内容を入力してください"))
	}

	reply := &models.Reply{
		CommentID: commentID,
		Content:   req.Content,
	}

	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("返信の作成に失敗しました", err))
	}

	cache.InvalidatePost(ctx, comment.PostID)
	return c.JSON(reply)
}

// LikeReply handles POST /api/replies/:id/like (protected)
func (s *Server) LikeReply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	if err := s.replyRepo.Like(ctx, id); err != nil {
		return respondRepoError(c, err, "返信が見つかりません", "いいねに失敗しました")
	}

	reply, err := s.replyRepo.GetByID(ctx, id)
	if err != nil {
		return respondRepoError(c, err, "返信が見つかりません", "データの取得に失敗しました")
	}

	// The reply counts render inside the cached post detail.
	comment, err := s.commentRepo.GetByID(ctx, reply.CommentID)
	if err != nil {
		return respondRepoError(c, err, "コメントが見つかりません", "データの取得に失敗しました")
	}
	cache.InvalidatePost(ctx, comment.PostID)

	return c.JSON(reply)
}
