package server

import (
	"io"

	"kiroku/internal/models"
	"kiroku/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// UploadResponse is the API response after uploading a file.
type UploadResponse struct {
	Key  string `json:"key"`
	Hash string `json:"hash"`
	URL  string `json:"url"`
}

// UploadImage handles POST /api/uploads (protected). The object is stored
// under its content hash, so an identical upload overwrites the prior
// object at the same path (last write wins).
func (s *Server) UploadImage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("ファイルがアップロードされていません"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("ファイルを読み込めませんでした"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("ファイルを読み込めませんでした"))
	}
	if len(content) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("ファイルがアップロードされていません"))
	}

	hash := storage.Sum(content)
	key := storage.ObjectPath(hash)

	if err := s.store.Put(ctx, key, content); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("アップロードに失敗しました", err))
	}

	return c.JSON(UploadResponse{
		Key:  key,
		Hash: hash,
		URL:  s.store.PublicURL(key),
	})
}
