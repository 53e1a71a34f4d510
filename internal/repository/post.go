package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts. Single-row
// lookups return (nil, nil) when nothing matches so callers can apply the
// soft-404 policy.
type PostRepository interface {
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error)
	CountPublished(ctx context.Context) (int64, error)
	GetPublishedByID(ctx context.Context, id uint) (*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	CountAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, post *models.Post) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository backed by the given handle.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withJoins preloads the author and category rows every listing surface
// renders alongside the post.
func (r *postRepository) withJoins(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category")
}

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withJoins(ctx).
		Where("published = ?", true).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("published = ?", true).Count(&count).Error
	return count, err
}

func (r *postRepository) GetPublishedByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withJoins(ctx).Where("id = ? AND published = ?", id, true).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withJoins(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withJoins(ctx).
		Where("category_id = ? AND published = ?", categoryID, true).
		Order("created_at desc").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withJoins(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withJoins(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// UpdateFields writes only the supplied columns; the service decides what
// to include, which is what makes the image tri-state work.
func (r *postRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

// IncrementViews bumps the counter in a single UPDATE so concurrent
// requests never lose updates.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
