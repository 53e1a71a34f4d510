package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/slug"

	"github.com/microcosm-cc/bluemonday"
)

type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	sanitizer    *bluemonday.Policy
	postsPerPage int
}

type CreatePostInput struct {
	Title       string
	Description string
	Content     string
	CategoryID  uint
	Image       string
	AuthorID    uint
	// Published defaults to true when nil; only the admin surface sends it.
	Published *bool
}

// UpdatePostInput carries a sparse post edit. Image is tri-state: nil keeps
// the current file, empty string clears it, anything else replaces it.
type UpdatePostInput struct {
	PostID      uint
	Title       string
	Description string
	Content     string
	CategoryID  *uint
	Image       *string
	Published   *bool
}

func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, postsPerPage int) *PostService {
	if postsPerPage <= 0 {
		postsPerPage = 6
	}
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		sanitizer:    bluemonday.UGCPolicy(),
		postsPerPage: postsPerPage,
	}
}

// PostsPerPage exposes the configured page size for pagination metadata.
func (s *PostService) PostsPerPage() int {
	return s.postsPerPage
}

// ListPublished returns one page of published posts, newest first, with the
// total published count. Page numbers below 1 are clamped to 1.
func (s *PostService) ListPublished(ctx context.Context, page int) ([]*models.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * s.postsPerPage

	posts, err := s.postRepo.ListPublished(ctx, s.postsPerPage, offset)
	if err != nil {
		return nil, 0, models.NewStorageError(err)
	}
	total, err := s.postRepo.CountPublished(ctx)
	if err != nil {
		return nil, 0, models.NewStorageError(err)
	}
	return posts, total, nil
}

// GetPublishedByID returns the published post or nil when it is missing or
// a draft; the handler turns nil into a redirect, not an error page.
func (s *PostService) GetPublishedByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetPublishedByID(ctx, id)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return post, nil
}

// ListByCategory returns the category and its published posts, or nil
// category when the id does not resolve.
func (s *PostService) ListByCategory(ctx context.Context, categoryID uint) (*models.Category, []*models.Post, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, models.NewStorageError(err)
	}
	if category == nil {
		return nil, nil, nil
	}
	posts, err := s.postRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, models.NewStorageError(err)
	}
	return category, posts, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	count, err := s.postRepo.CountByAuthor(ctx, authorID)
	if err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

func (s *PostService) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	posts, err := s.postRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, models.NewStorageError(err)
	}
	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, 0, models.NewStorageError(err)
	}
	return posts, total, nil
}

// Create validates and stores a new post. The slug derives from the title,
// the content is sanitized before it is written, and a zero category id is
// stored as NULL.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	var problems []string
	if title == "" {
		problems = append(problems, "title is required")
	}
	if content == "" {
		problems = append(problems, "content is required")
	}
	if len(problems) > 0 {
		return nil, models.NewValidationErrors(problems)
	}

	categoryID, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	post := &models.Post{
		Title:       title,
		Slug:        slug.Make(title),
		Description: strings.TrimSpace(in.Description),
		Content:     s.sanitizer.Sanitize(content),
		Image:       in.Image,
		CategoryID:  categoryID,
		AuthorID:    in.AuthorID,
		Published:   published,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewStorageError(err)
	}
	return post, nil
}

// Update applies a sparse edit and stamps updated_at. It returns the
// refreshed post and the replaced image filename, if any, so the caller can
// remove the orphaned file.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, string, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, "", models.NewStorageError(err)
	}
	if post == nil {
		return nil, "", models.NewNotFoundError("Post", in.PostID)
	}

	fields := map[string]interface{}{}

	if title := strings.TrimSpace(in.Title); title != "" && title != post.Title {
		fields["title"] = title
		fields["slug"] = slug.Make(title)
	}
	if description := strings.TrimSpace(in.Description); description != "" && description != post.Description {
		fields["description"] = description
	}
	if content := strings.TrimSpace(in.Content); content != "" {
		fields["content"] = s.sanitizer.Sanitize(content)
	}
	if in.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *in.CategoryID)
		if err != nil {
			return nil, "", err
		}
		fields["category_id"] = categoryID
	}
	if in.Published != nil {
		fields["published"] = *in.Published
	}

	var replacedImage string
	if in.Image != nil && *in.Image != post.Image {
		replacedImage = post.Image
		fields["image"] = *in.Image
	}

	if len(fields) > 0 {
		now := time.Now()
		fields["updated_at"] = &now
		if err := s.postRepo.UpdateFields(ctx, post.ID, fields); err != nil {
			return nil, "", models.NewStorageError(err)
		}
	}

	updated, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, "", models.NewStorageError(err)
	}
	return updated, replacedImage, nil
}

// Delete removes the post and returns it so the caller can clean up its
// image file.
func (s *PostService) Delete(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return nil, models.NewStorageError(err)
	}
	return post, nil
}

// IncrementViews bumps the view counter. Failures are logged by the caller
// but never block rendering the post.
func (s *PostService) IncrementViews(ctx context.Context, id uint) error {
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		return models.NewStorageError(err)
	}
	middleware.PostViews.Inc()
	return nil
}

// resolveCategory maps 0 to NULL and verifies a nonzero id exists.
func (s *PostService) resolveCategory(ctx context.Context, id uint) (*uint, error) {
	if id == 0 {
		return nil, nil
	}
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if category == nil {
		return nil, models.NewValidationError("Unknown category")
	}
	return &id, nil
}
