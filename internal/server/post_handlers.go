package server

import (
	"kiroku/internal/cache"
	"kiroku/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var posts []*models.Post
	err := cache.CacheAside(ctx, cache.PostListKey(), &posts, cache.PostListTTL, func() error {
		fetched, err := s.postRepo.List(ctx)
		if err != nil {
			return err
		}
		posts = s.decoratePosts(fetched)
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("投稿記事の取得に失敗しました", err))
	}

	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Title         string `json:"title"`
		Content       string `json:"content"`
		CoverImageKey string `json:"coverImageKey"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}

	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("タイトルと本文を入力してください"))
	}

	// The cover image key must point at an object that was actually uploaded.
	if req.CoverImageKey != "" {
		exists, err := s.store.Exists(ctx, req.CoverImageKey)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError("投稿記事の作成に失敗しました", err))
		}
		if !exists {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("カバー画像がアップロードされていません"))
		}
	}

	post := &models.Post{
		Title:         req.Title,
		Content:       req.Content,
		CoverImageKey: req.CoverImageKey,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("投稿記事の作成に失敗しました", err))
	}

	cache.InvalidatePost(ctx, post.ID)
	return c.JSON(s.decoratePost(post))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	var post *models.Post
	err := cache.CacheAside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		fetched, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		post = s.decoratePost(fetched)
		return nil
	})
	if err != nil {
		return respondRepoError(c, err, "投稿記事が見つかりません", "データの取得に失敗しました")
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id.
// The body is a patch: only supplied fields change. A supplied categories
// array (even an empty one) replaces the whole tag set.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	var req struct {
		Title         *string        `json:"title"`
		Content       *string        `json:"content"`
		CoverImageKey *string        `json:"coverImageKey"`
		Categories    *[]CategoryRef `json:"categories"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return respondRepoError(c, err, "投稿記事が見つかりません", "データの取得に失敗しました")
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("タイトルを入力してください"))
		}
		post.Title = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("本文を入力してください"))
		}
		post.Content = *req.Content
	}
	if req.CoverImageKey != nil {
		if *req.CoverImageKey != "" {
			exists, err := s.store.Exists(ctx, *req.CoverImageKey)
			if err != nil {
				return models.RespondWithError(c, fiber.StatusInternalServerError,
					models.NewInternalError("投稿記事の更新に失敗しました", err))
			}
			if !exists {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("カバー画像がアップロードされていません"))
			}
		}
		post.CoverImageKey = *req.CoverImageKey
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("投稿記事の更新に失敗しました", err))
	}

	if req.Categories != nil {
		categories, err := s.resolveCategories(ctx, *req.Categories)
		if err != nil {
			return respondRepoError(c, err, "カテゴリが見つかりません", "投稿記事の更新に失敗しました")
		}
		if err := s.postRepo.ReplaceCategories(ctx, post, categories); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError("投稿記事の更新に失敗しました", err))
		}
	}

	cache.InvalidatePost(ctx, post.ID)
	return c.JSON(s.decoratePost(post))
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return respondRepoError(c, err, "投稿記事が見つかりません", "投稿記事の削除に失敗しました")
	}

	cache.InvalidatePost(ctx, id)
	return c.JSON(fiber.Map{"message": "投稿記事の削除に成功しました"})
}

// LikePost handles POST /api/posts/:id/like (protected).
// Two calls from the same caller increment the counter twice; likes are
// not deduplicated.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	if err := s.postRepo.Like(ctx, id); err != nil {
		return respondRepoError(c, err, "投稿記事が見つかりません", "いいねに失敗しました")
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return respondRepoError(c, err, "投稿記事が見つかりません", "データの取得に失敗しました")
	}

	cache.InvalidatePost(ctx, id)
	return c.JSON(s.decoratePost(post))
}
