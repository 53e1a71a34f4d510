package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:            "0",
		Env:             "test",
		PostsPerPage:    2,
		MaxUploadSizeMB: 5,
		ImageMaxWidth:   1920,
		ImageMaxHeight:  1920,
		SessionTTLHours: 1,
		UploadDir:       t.TempDir(),
	}
}

// newTestServer builds a server against an isolated in-memory database
// with in-memory sessions.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)

	s := NewServerWithDeps(testConfig(t), db, nil)
	return s, s.App()
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: string(hash),
		Role:     role,
		Active:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// login authenticates a seeded user and returns its session cookie.
func login(t *testing.T, app *fiber.App, username string) *http.Cookie {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": "password1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// doMultipart submits a multipart form with the given fields and an
// optional file part.
func doMultipart(t *testing.T, app *fiber.App, method, path string, fields map[string]string, fileField, fileName string, fileData []byte, cookie *http.Cookie) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
