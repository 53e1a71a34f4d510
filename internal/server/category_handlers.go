package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories. Each category carries its
// published-post count.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryService.ListWithPostCount(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategoryPosts handles GET /api/categories/:id/posts.
func (s *Server) GetCategoryPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, posts, err := s.postService.ListByCategory(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if category == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Category", id))
	}

	return c.JSON(fiber.Map{
		"category": category,
		"posts":    posts,
	})
}
