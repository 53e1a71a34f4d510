package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	s, app := newTestServer(t)
	author := seedUser(t, s.db, "author", models.RoleAuthor)
	seedUser(t, s.db, "reader", models.RoleUser)
	post := seedPost(t, s, author.ID, "discussed", true)
	cookie := login(t, app, "reader")

	commentsPath := fmt.Sprintf("/api/posts/%d/comments", post.ID)

	resp := doJSON(t, app, http.MethodPost, commentsPath, map[string]string{
		"content": "great <b>read</b>",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	created := body["comment"].(map[string]interface{})
	// Markup is stripped from comments.
	assert.Equal(t, "great read", created["content"])
	// Fresh comments read as unedited.
	assert.Equal(t, created["created_at"], created["updated_at"])

	commentID := uint(created["id"].(float64))

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/comments/%d", commentID), map[string]string{
		"content": "great read, edited",
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	edited := body["comment"].(map[string]interface{})
	assert.NotEqual(t, edited["created_at"], edited["updated_at"])

	resp = doJSON(t, app, http.MethodGet, commentsPath, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["comments"], 1)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body = decodeBody(t, doJSON(t, app, http.MethodGet, commentsPath, nil, nil))
	assert.Len(t, body["comments"], 0)
}

func TestCommentOnDraftRejected(t *testing.T) {
	s, app := newTestServer(t)
	author := seedUser(t, s.db, "author", models.RoleAuthor)
	seedUser(t, s.db, "reader", models.RoleUser)
	draft := seedPost(t, s, author.ID, "draft", false)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", draft.ID), map[string]string{
		"content": "first",
	}, login(t, app, "reader"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentDeletePermissions(t *testing.T) {
	s, app := newTestServer(t)
	postAuthor := seedUser(t, s.db, "author", models.RoleAuthor)
	commenter := seedUser(t, s.db, "commenter", models.RoleUser)
	seedUser(t, s.db, "stranger", models.RoleUser)
	post := seedPost(t, s, postAuthor.ID, "moderated", true)

	newComment := func(t *testing.T) uint {
		comment := &models.Comment{PostID: post.ID, UserID: commenter.ID, Content: "hmm"}
		require.NoError(t, s.db.Create(comment).Error)
		return comment.ID
	}

	t.Run("stranger forbidden", func(t *testing.T) {
		id := newComment(t)
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%d", id), nil, login(t, app, "stranger"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("post author may moderate their thread", func(t *testing.T) {
		id := newComment(t)
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%d", id), nil, login(t, app, "author"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("post author may not edit the comment", func(t *testing.T) {
		id := newComment(t)
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/comments/%d", id), map[string]string{
			"content": "reworded by the post author",
		}, login(t, app, "author"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
