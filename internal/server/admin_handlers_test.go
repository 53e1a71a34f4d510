package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUserManagement(t *testing.T) {
	s, app := newTestServer(t)
	admin := seedUser(t, s.db, "boss", models.RoleAdmin)
	target := seedUser(t, s.db, "worker", models.RoleUser)
	cookie := login(t, app, "boss")

	t.Run("list", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/users", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["users"], 2)
		assert.EqualValues(t, 2, body["total"])
	})

	t.Run("promote to author", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", target.ID), map[string]interface{}{
			"role": models.RoleAuthor,
		}, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, models.RoleAuthor, body["user"].(map[string]interface{})["role"])
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", target.ID), map[string]interface{}{
			"role": "emperor",
		}, cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("deactivate", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", target.ID), map[string]interface{}{
			"active": false,
		}, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// A deactivated account can no longer log in.
		resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "worker",
			"password": "password1",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("self-delete rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", admin.ID), nil, cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete cascades content", func(t *testing.T) {
		post := seedPost(t, s, target.ID, "doomed-post", true)
		require.NoError(t, s.db.Create(&models.Comment{PostID: post.ID, UserID: target.ID, Content: "bye"}).Error)

		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", target.ID), nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts, comments int64
		require.NoError(t, s.db.Model(&models.Post{}).Where("author_id = ?", target.ID).Count(&posts).Error)
		require.NoError(t, s.db.Model(&models.Comment{}).Where("user_id = ?", target.ID).Count(&comments).Error)
		assert.EqualValues(t, 0, posts)
		assert.EqualValues(t, 0, comments)
	})
}

func TestAdminCreateUserWithRole(t *testing.T) {
	s, app := newTestServer(t)
	seedUser(t, s.db, "boss", models.RoleAdmin)
	cookie := login(t, app, "boss")

	resp := doJSON(t, app, http.MethodPost, "/api/admin/users", map[string]string{
		"username": "newauthor",
		"email":    "newauthor@example.com",
		"password": "secret1",
		"role":     models.RoleAuthor,
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, models.RoleAuthor, body["user"].(map[string]interface{})["role"])

	// An invalid role fails the whole request; no half-configured
	// account is left behind.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/users", map[string]string{
		"username": "pretender",
		"email":    "pretender@example.com",
		"password": "secret1",
		"role":     "emperor",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Where("username = ?", "pretender").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAdminPostSurface(t *testing.T) {
	s, app := newTestServer(t)
	author := seedUser(t, s.db, "scribe", models.RoleAuthor)
	seedUser(t, s.db, "plain", models.RoleUser)
	seedPost(t, s, author.ID, "draft", false)

	t.Run("plain users cannot use the content surface", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/posts", nil, login(t, app, "plain"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("authors see drafts in the listing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/posts", nil, login(t, app, "scribe"))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["posts"], 1)
	})

	t.Run("publish state is configurable", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/admin/posts", map[string]interface{}{
			"title":     "Held Back",
			"content":   "draft body",
			"published": false,
		}, login(t, app, "scribe"))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, false, body["post"].(map[string]interface{})["published"])
	})
}

func TestAdminCategoryManagement(t *testing.T) {
	s, app := newTestServer(t)
	author := seedUser(t, s.db, "scribe", models.RoleAuthor)
	seedUser(t, s.db, "boss", models.RoleAdmin)
	cookie := login(t, app, "boss")

	resp := doJSON(t, app, http.MethodPost, "/api/admin/categories", map[string]string{
		"name": "Niños y Niñas",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	created := body["category"].(map[string]interface{})
	assert.Equal(t, "ninos-y-ninas", created["slug"])
	id := uint(created["id"].(float64))

	t.Run("duplicate name conflicts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/admin/categories", map[string]string{
			"name": "Niños y Niñas",
		}, cookie)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("delete blocked while referenced", func(t *testing.T) {
		post := seedPost(t, s, author.ID, "anchored", true)
		require.NoError(t, s.db.Model(post).Update("category_id", id).Error)

		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", id), nil, cookie)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		require.NoError(t, s.db.Model(post).Update("category_id", nil).Error)
		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", id), nil, cookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
