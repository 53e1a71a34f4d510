// Package policy holds the authorization predicates consumed by handlers.
// Every predicate is a pure function of its inputs so it can be unit
// tested without any HTTP context; callers must re-derive authorization
// from the current Principal on every request.
package policy

import (
	"inkwell/internal/models"
)

// IsAdmin reports whether the principal holds the admin role.
func IsAdmin(p models.Principal) bool {
	return p.Role == models.RoleAdmin
}

// CanCreateContent reports whether the principal may use the admin content
// surfaces (posts with configurable publish state, category management
// listings). Self-service post creation is open to any authenticated user
// and is not gated by this predicate.
func CanCreateContent(p models.Principal) bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleAuthor
}

// CanModifyPost reports whether the principal may update or delete the post.
func CanModifyPost(p models.Principal, post *models.Post) bool {
	if post == nil {
		return false
	}
	return IsAdmin(p) || post.AuthorID == p.UserID
}

// CanEditComment reports whether the caller may edit the comment:
// admins, or the comment's author.
func CanEditComment(comment *models.Comment, userID uint, role string) bool {
	if comment == nil {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	return comment.UserID == userID
}

// CanDeleteComment reports whether the caller may delete the comment:
// admins, the comment's author, or the author of the post it sits on.
func CanDeleteComment(comment *models.Comment, userID uint, role string, postAuthorID uint) bool {
	if comment == nil {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	if comment.UserID == userID {
		return true
	}
	return postAuthorID != 0 && postAuthorID == userID
}
