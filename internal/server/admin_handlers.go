package server

import (
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

const adminPageSize = 20

// AdminListUsers handles GET /api/admin/users.
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	page := parsePage(c)
	offset := (page - 1) * adminPageSize

	users, err := s.userService.ListUsers(c.UserContext(), adminPageSize, offset)
	if err != nil {
		return fail(c, err)
	}
	total, err := s.userService.CountUsers(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
		"page":  page,
		"total": total,
	})
}

// AdminCreateUser handles POST /api/admin/users. Unlike self-service
// registration, the admin surface may assign any role directly.
func (s *Server) AdminCreateUser(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// AdminUpdateUser handles PUT /api/admin/users/:id.
func (s *Server) AdminUpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role     *string `json:"role"`
		Active   *bool   `json:"active"`
		FullName *string `json:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.AdminUpdate(c.UserContext(), service.AdminUpdateUserInput{
		UserID:   id,
		Role:     req.Role,
		Active:   req.Active,
		FullName: req.FullName,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// AdminDeleteUser handles DELETE /api/admin/users/:id. An admin cannot
// delete their own account through this surface.
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller := principal(c)

	if id == caller.UserID {
		return fail(c, models.NewValidationError("You cannot delete your own account"))
	}

	if err := s.userService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// AdminListPosts handles GET /api/admin/posts. Drafts are included.
func (s *Server) AdminListPosts(c *fiber.Ctx) error {
	if !policy.CanCreateContent(principal(c)) {
		return fail(c, models.NewForbiddenError())
	}
	page := parsePage(c)
	offset := (page - 1) * adminPageSize

	posts, total, err := s.postService.ListAll(c.UserContext(), adminPageSize, offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"page":  page,
		"total": total,
	})
}

// AdminCreatePost handles POST /api/admin/posts. The publish state is
// configurable and authorship stays with the caller, who must hold a
// content role.
func (s *Server) AdminCreatePost(c *fiber.Ctx) error {
	caller := principal(c)
	if !policy.CanCreateContent(caller) {
		return fail(c, models.NewForbiddenError())
	}

	var req struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
		Content     string `json:"content" form:"content"`
		CategoryID  uint   `json:"category_id" form:"category_id"`
		Published   *bool  `json:"published" form:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := s.saveUploadedImage(c, "post")
	if err != nil {
		return fail(c, err)
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		Image:       image,
		AuthorID:    caller.UserID,
		Published:   req.Published,
	})
	if err != nil {
		if image != "" {
			_ = s.imageService.Delete(image)
		}
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// AdminCreateCategory handles POST /api/admin/categories.
func (s *Server) AdminCreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.Create(c.UserContext(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

// AdminUpdateCategory handles PUT /api/admin/categories/:id.
func (s *Server) AdminUpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.Update(c.UserContext(), id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

// AdminDeleteCategory handles DELETE /api/admin/categories/:id. Deletion
// is refused while any post still references the category.
func (s *Server) AdminDeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.categoryService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
