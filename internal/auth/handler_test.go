package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"garage-backend/internal/config"
	"garage-backend/internal/database"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testConfig = &config.Config{
	JWTSecret: "0123456789abcdef0123456789abcdef",
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	app.Post("/api/auth/login", LoginHandler(testConfig))
	app.Get("/api/auth/me", JWTMiddleware(testConfig), MeHandler())
	return app
}

func seedUser(t *testing.T, username, password string, active bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsActive:     active,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func login(t *testing.T, app *fiber.App, username, password string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(LoginRequest{Username: username, Password: password}))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLoginSuccess(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "admin", "admin123", true)

	resp := login(t, app, "admin", "admin123")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "admin", body.User.Username)

	// Issued token must pass the middleware.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "admin", "admin123", true)

	resp := login(t, app, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginInactiveUser(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "former", "secret99", false)

	resp := login(t, app, "former", "secret99")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownUser(t *testing.T) {
	app := setupTestApp(t)

	resp := login(t, app, "nobody", "whatever")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeRequiresToken(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
