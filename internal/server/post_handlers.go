package server

import (
	"errors"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type postForm struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Content     string `json:"content" form:"content"`
	CategoryID  uint   `json:"category_id" form:"category_id"`
}

// GetPosts handles GET /api/posts. Paginated public listing of published
// posts, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePage(c)

	posts, total, err := s.postService.ListPublished(c.UserContext(), page)
	if err != nil {
		return fail(c, err)
	}

	perPage := s.postService.PostsPerPage()
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return c.JSON(fiber.Map{
		"posts": posts,
		"page":  page,
		"pages": pages,
		"total": total,
	})
}

// GetPost handles GET /api/posts/:id. Serving the post counts as a view.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPublishedByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", id))
	}

	// A failed counter bump never blocks serving the post.
	if err := s.postService.IncrementViews(c.UserContext(), id); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "incrementing views", "error", err.Error())
	} else {
		post.Views++
	}

	comments, err := s.commentService.CountByPost(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"post":          post,
		"comment_count": comments,
	})
}

// CreatePost handles POST /api/posts. Any authenticated user may publish
// through the self-service surface, with stricter form validation than the
// admin one; the post is always published immediately.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	caller := principal(c)

	var req postForm
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var problems []string
	if len(req.Title) < 5 {
		problems = append(problems, "title must be at least 5 characters")
	}
	if req.Description == "" {
		problems = append(problems, "description is required")
	}
	if len(req.Content) < 50 {
		problems = append(problems, "content must be at least 50 characters")
	}
	if req.CategoryID == 0 {
		problems = append(problems, "category is required")
	}
	if len(problems) > 0 {
		return fail(c, models.NewValidationErrors(problems))
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
	})
	if err != nil {
		// The row never materialized; remove the file it referenced.
		if image != "" {
			_ = s.imageService.Delete(image)
		}
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// UpdatePost handles PUT /api/posts/:id.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller := principal(c)

	post, err := s.postService.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", id))
	}
	if !policy.CanModifyPost(caller, post) {
		return fail(c, models.NewForbiddenError())
	}

	var req struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
		Content     string `json:"content" form:"content"`
		CategoryID  *uint  `json:"category_id" form:"category_id"`
		// RemoveImage clears the stored image when no replacement is sent.
		RemoveImage bool `json:"remove_image" form:"remove_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var imageField *string
	uploaded, err := s.saveUploadedImage(c, "post")
	if err != nil {
		return fail(c, err)
	}
	switch {
	case uploaded != "":
		imageField = &uploaded
	case req.RemoveImage:
		empty := ""
		imageField = &empty
	}

	updated, replaced, err := s.postService.Update(c.UserContext(), service.UpdatePostInput{
		PostID:      id,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		Image:       imageField,
	})
	if err != nil {
		if uploaded != "" {
			_ = s.imageService.Delete(uploaded)
		}
		return fail(c, err)
	}
	if replaced != "" {
		if err := s.imageService.Delete(replaced); err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "deleting replaced image", "error", err.Error())
		}
	}

	return c.JSON(fiber.Map{"post": updated})
}

// DeletePost handles DELETE /api/posts/:id. The image file goes first;
// an orphaned file is acceptable, a dangling reference is not.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	caller := principal(c)

	post, err := s.postService.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", id))
	}
	if !policy.CanModifyPost(caller, post) {
		return fail(c, models.NewForbiddenError())
	}

	if post.Image != "" {
		if err := s.imageService.Delete(post.Image); err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "deleting post image", "error", err.Error())
		}
	}
	if _, err := s.postService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// saveUploadedImage processes an optional multipart "image" field and
// returns the stored filename, or "" when the request carries no file.
// A file part that fails to parse rejects the request; only a genuinely
// absent file is treated as "no image".
func (s *Server) saveUploadedImage(c *fiber.Ctx, prefix string) (string, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
		return "", nil
	}
	if err != nil {
		return "", models.NewValidationError("Invalid file upload")
	}
	data, err := readUpload(fh)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return s.imageService.Save(prefix, fh.Filename, data)
}
