package server

import (
	"context"
	"errors"
	"time"

	"kiroku/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CategoryRef names a category in a request body when replacing a tag set.
// Only the id is used for resolution; the name rides along for symmetry
// with the response shape.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// respondRepoError maps a persistence-gateway error to the API contract:
// missing rows become 404 with notFoundMsg, everything else becomes 500
// with failMsg.
func respondRepoError(c *fiber.Ctx, err error, notFoundMsg, failMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError(notFoundMsg))
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(failMsg, err))
}

// parseDueDate accepts a plain calendar date or a full RFC 3339 timestamp.
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// resolveCategories loads each referenced category, failing on the first
// id that does not exist. An empty input resolves to an empty set.
func (s *Server) resolveCategories(ctx context.Context, refs []CategoryRef) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(refs))
	for _, ref := range refs {
		category, err := s.categoryRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, nil
}

// decoratePost derives the public cover image URL from the stored key.
func (s *Server) decoratePost(post *models.Post) *models.Post {
	if post.CoverImageKey != "" && s.store != nil {
		post.CoverImageURL = s.store.PublicURL(post.CoverImageKey)
	}
	return post
}

func (s *Server) decoratePosts(posts []*models.Post) []*models.Post {
	for _, p := range posts {
		s.decoratePost(p)
	}
	return posts
}
