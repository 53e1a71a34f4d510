package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB returns an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "$2a$10$abcdefghijklmnopqrstuv",
		Role:     models.RoleUser,
		Active:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, title string, published bool, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     title,
		Slug:      title,
		Content:   "content of " + title,
		AuthorID:  authorID,
		Published: published,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, postID, userID uint, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	require.NoError(t, NewCommentRepository(db).Create(context.Background(), comment))
	return comment
}
