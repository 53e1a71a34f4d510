package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/slug"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CategoryInput struct {
	Name        string
	Description string
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return categories, nil
}

// ListWithPostCount returns every category with its published-post tally
// for the public category index.
func (s *CategoryService) ListWithPostCount(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListWithPostCount(ctx)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return categories, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("name is required")
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		// The unique index on name is the only constraint that can fire here.
		return nil, models.NewConflictError("Category already exists")
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if category == nil {
		return nil, models.NewNotFoundError("Category", id)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("name is required")
	}

	category.Name = name
	category.Slug = slug.Make(name)
	category.Description = strings.TrimSpace(in.Description)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, models.NewConflictError("Category already exists")
	}
	return category, nil
}

// Delete refuses to remove a category that still has posts, published or
// not, so no post is ever silently uncategorized.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return models.NewStorageError(err)
	}
	if category == nil {
		return models.NewNotFoundError("Category", id)
	}

	count, err := s.categoryRepo.CountPosts(ctx, id)
	if err != nil {
		return models.NewStorageError(err)
	}
	if count > 0 {
		return models.NewConflictError("Category still has posts assigned to it")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return models.NewStorageError(err)
	}
	return nil
}
