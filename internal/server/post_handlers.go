package server

import (
	"time"

	"kkapi/internal/models"
	"kkapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/post/
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c)

	result, err := s.postService.ListPosts(c.Context(), page.Limit(), page.Offset())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// CreatePost handles POST /api/post/add
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title     string     `json:"title"`
		Link      string     `json:"link"`
		Author    string     `json:"author"`
		Avatar    string     `json:"avatar"`
		Rule      string     `json:"rule"`
		Published *time.Time `json:"published"`
		Updated   *time.Time `json:"updated"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{
		Title:  req.Title,
		Link:   req.Link,
		Author: req.Author,
		Avatar: req.Avatar,
		Rule:   req.Rule,
	}
	if req.Published != nil {
		in.Published = *req.Published
	}
	if req.Updated != nil {
		in.Updated = *req.Updated
	}

	post, err := s.postService.CreatePost(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}
