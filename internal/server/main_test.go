package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kkapi/internal/auth"
	"kkapi/internal/config"
	"kkapi/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:        "8320",
		JWTSecret:   "test-secret-at-least-32-characters-long",
		JWTTTLHours: 1,
		Env:         "test",
	}
}

// newTestServer wires a full server over an in-memory database and a
// miniredis instance, with the production middleware and routes mounted.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.APIToken{},
		&models.Tag{},
		&models.SpeakEntry{},
		&models.Post{},
	))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return s, app
}

// createAccount inserts a user with a real password digest and returns it.
func createAccount(t *testing.T, s *Server, username, password string) *models.User {
	t.Helper()
	digest, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Username: username, Password: digest, Nickname: username}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

// sessionToken issues a signed session token for the given user.
func sessionToken(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.tokens.Issue(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

func createAccountTag(t *testing.T, s *Server, ownerID uint, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{UserID: ownerID, Name: name, BgColor: "#409EFF"}
	require.NoError(t, s.db.Create(tag).Error)
	return tag
}

// doJSON performs a request against the app, optionally with a bearer
// token and a JSON body, and returns the response.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
