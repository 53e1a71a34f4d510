package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// refreshSession replaces the Principal stored behind the request's
// session token after a profile mutation, so the displayed identity stays
// current without a re-login.
func (s *Server) refreshSession(c *fiber.Ctx, user *models.User) {
	token := c.Cookies(middleware.SessionCookie)
	if token == "" {
		return
	}
	if err := s.sessions.Refresh(c.UserContext(), token, models.PrincipalFromUser(user)); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "refreshing session", "error", err.Error())
	}
}

// GetProfile handles GET /api/profile.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	caller := principal(c)

	user, err := s.userService.GetByID(c.UserContext(), caller.UserID)
	if err != nil {
		return fail(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", caller.UserID))
	}

	posts, err := s.postService.ListByAuthor(c.UserContext(), caller.UserID)
	if err != nil {
		return fail(c, err)
	}
	postCount, err := s.postService.CountByAuthor(c.UserContext(), caller.UserID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"user":       user,
		"posts":      posts,
		"post_count": postCount,
	})
}

// UpdateProfile handles PUT /api/profile.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	caller := principal(c)

	var req struct {
		FullName string `json:"full_name" form:"full_name"`
		Email    string `json:"email" form:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   caller.UserID,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return fail(c, err)
	}

	s.refreshSession(c, user)
	return c.JSON(fiber.Map{"user": user})
}

// ChangePassword handles PUT /api/profile/password.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	caller := principal(c)

	var req struct {
		CurrentPassword string `json:"current_password" form:"current_password"`
		NewPassword     string `json:"new_password" form:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.UserContext(), caller.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// UploadAvatar handles PUT /api/profile/avatar. The old avatar file is
// removed only after the new reference is committed.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	caller := principal(c)

	fh, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}
	data, err := readUpload(fh)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	filename, err := s.imageService.Save("avatar", fh.Filename, data)
	if err != nil {
		return fail(c, err)
	}

	old, err := s.userService.UpdateAvatar(c.UserContext(), caller.UserID, filename)
	if err != nil {
		_ = s.imageService.Delete(filename)
		return fail(c, err)
	}
	if old != "" {
		if err := s.imageService.Delete(old); err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "deleting old avatar", "error", err.Error())
		}
	}

	user, err := s.userService.GetByID(c.UserContext(), caller.UserID)
	if err != nil {
		return fail(c, err)
	}
	s.refreshSession(c, user)

	return c.JSON(fiber.Map{"avatar": filename})
}

// DeleteAvatar handles DELETE /api/profile/avatar.
func (s *Server) DeleteAvatar(c *fiber.Ctx) error {
	caller := principal(c)

	old, err := s.userService.DeleteAvatar(c.UserContext(), caller.UserID)
	if err != nil {
		return fail(c, err)
	}
	if old != "" {
		if err := s.imageService.Delete(old); err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "deleting avatar", "error", err.Error())
		}
	}

	user, err := s.userService.GetByID(c.UserContext(), caller.UserID)
	if err != nil {
		return fail(c, err)
	}
	s.refreshSession(c, user)

	return c.JSON(fiber.Map{"message": "Avatar removed"})
}
