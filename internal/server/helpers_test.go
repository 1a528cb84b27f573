package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- parsePagination ---

func paginationApp() *fiber.App {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c)
		return c.JSON(fiber.Map{"limit": p.Limit(), "offset": p.Offset()})
	})
	return app
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		limit  float64
		offset float64
	}{
		{"defaults", "", 10, 0},
		{"explicit", "?page=3&pageSize=20", 20, 40},
		{"page below one", "?page=0&pageSize=5", 5, 0},
		{"page size below one", "?pageSize=-2", 10, 0},
		{"page size clamped", "?pageSize=5000", 100, 0},
		{"non numeric", "?page=abc&pageSize=xyz", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := paginationApp()
			req := httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body map[string]float64
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.limit, body["limit"])
			assert.Equal(t, tt.offset, body["offset"])
		})
	}
}

// --- parseID ---

func TestParseID(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	tests := []struct {
		name           string
		param          string
		expectedStatus int
	}{
		{"valid", "42", http.StatusOK},
		{"non numeric", "abc", http.StatusBadRequest},
		{"zero", "0", http.StatusBadRequest},
		{"negative", "-5", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items/"+tt.param, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// --- bearerToken ---

func TestBearerToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"token": bearerToken(c)})
	})

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"well formed", "Bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"no token part", "Bearer", ""},
		{"too many parts", "Bearer a b", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expected, body["token"])
		})
	}
}
