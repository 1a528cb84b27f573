package server

import (
	"errors"
	"strings"

	"kkapi/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was
// already committed by a helper. Handlers must return nil (not this
// error) to avoid Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed page/pageSize query parameters as limit/offset.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// parsePagination extracts page and pageSize query parameters. Page
// starts at 1; pageSize clamps to [1, 100].
func parsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) Limit() int  { return p.PageSize }
func (p Pagination) Offset() int { return (p.Page - 1) * p.PageSize }

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+strings.ToUpper(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps service-layer error codes onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.CodeValidation:
		status = fiber.StatusBadRequest
	case models.CodeUnauthorized:
		status = fiber.StatusUnauthorized
	case models.CodeNotFound:
		status = fiber.StatusNotFound
	case models.CodeConflict:
		status = fiber.StatusConflict
	}
	return models.RespondWithError(c, status, appErr)
}

// bearerToken pulls the token out of an "Authorization: Bearer" header.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
