package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateStampsTimestamps(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "poster")
	post := createTestPost(t, db, author.ID, "commented", true, time.Now())
	comment := createTestComment(t, db, post.ID, author.ID, "first!")

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first!", got.Content)
	assert.Equal(t, "poster", got.User.Username)
	// A fresh comment reads as unedited.
	assert.True(t, got.UpdatedAt.Equal(got.CreatedAt))
	assert.False(t, got.Edited())
}

func TestCommentRepository_UpdateContentMarksEdited(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "editor")
	post := createTestPost(t, db, author.ID, "edited-on", true, time.Now())
	comment := createTestComment(t, db, post.ID, author.ID, "tpyo")

	editedAt := comment.CreatedAt.Add(5 * time.Minute)
	require.NoError(t, repo.UpdateContent(ctx, comment.ID, "typo", editedAt))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "typo", got.Content)
	assert.True(t, got.Edited())
	assert.WithinDuration(t, editedAt, got.UpdatedAt, time.Second)
}

func TestCommentRepository_ListByPostNewestFirst(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "lister")
	post := createTestPost(t, db, author.ID, "busy-thread", true, time.Now())
	other := createTestPost(t, db, author.ID, "quiet-thread", true, time.Now())

	first := createTestComment(t, db, post.ID, author.ID, "older")
	// Push the second comment later so the ordering is deterministic.
	second := createTestComment(t, db, post.ID, author.ID, "newer")
	require.NoError(t, db.Model(second).Updates(map[string]interface{}{
		"created_at": first.CreatedAt.Add(time.Minute),
		"updated_at": first.CreatedAt.Add(time.Minute),
	}).Error)
	createTestComment(t, db, other.ID, author.ID, "elsewhere")

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "newer", comments[0].Content)
	assert.Equal(t, "older", comments[1].Content)
}

func TestCommentRepository_CountByPost(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "tallier")
	post := createTestPost(t, db, author.ID, "tallied", true, time.Now())

	count, err := repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	createTestComment(t, db, post.ID, author.ID, "a")
	createTestComment(t, db, post.ID, author.ID, "b")

	count, err = repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCommentRepository_DeleteAndMissing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "remover")
	post := createTestPost(t, db, author.ID, "cleanup", true, time.Now())
	comment := createTestComment(t, db, post.ID, author.ID, "gone soon")

	require.NoError(t, repo.Delete(ctx, comment.ID))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
