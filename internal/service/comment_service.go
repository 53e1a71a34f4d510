package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/repository"

	"github.com/microcosm-cc/bluemonday"
)

const maxCommentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	sanitizer   *bluemonday.Policy
}

type CreateCommentInput struct {
	PostID  uint
	UserID  uint
	Content string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		// Comments are plain text; all markup is stripped on write.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Create attaches a comment to a published post.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content, err := s.cleanContent(in.Content)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetPublishedByID(ctx, in.PostID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewStorageError(err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return created, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return comments, nil
}

func (s *CommentService) CountByPost(ctx context.Context, postID uint) (int64, error) {
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

// Update replaces the comment content when the caller is allowed to edit
// it. Editing re-stamps updated_at, which marks the comment as edited.
func (s *CommentService) Update(ctx context.Context, commentID uint, caller models.Principal, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if !policy.CanEditComment(comment, caller.UserID, caller.Role) {
		return nil, models.NewForbiddenError()
	}

	cleaned, err := s.cleanContent(content)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, commentID, cleaned, time.Now()); err != nil {
		return nil, models.NewStorageError(err)
	}

	updated, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return updated, nil
}

// Delete removes the comment when the caller is its author, an admin, or
// the author of the post it sits on.
func (s *CommentService) Delete(ctx context.Context, commentID uint, caller models.Principal) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return models.NewStorageError(err)
	}
	if comment == nil {
		return models.NewNotFoundError("Comment", commentID)
	}

	var postAuthorID uint
	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return models.NewStorageError(err)
	}
	if post != nil {
		postAuthorID = post.AuthorID
	}

	if !policy.CanDeleteComment(comment, caller.UserID, caller.Role, postAuthorID) {
		return models.NewForbiddenError()
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (s *CommentService) cleanContent(content string) (string, error) {
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(content))
	if cleaned == "" {
		return "", models.NewValidationError("comment is required")
	}
	if len(cleaned) > maxCommentLen {
		return "", models.NewValidationError("comment is too long")
	}
	return cleaned, nil
}
