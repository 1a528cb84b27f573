package server

import (
	"kkapi/internal/models"
	"kkapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/ispeak/tag/?userId=
// Logged-in callers default to their own tags; anonymous callers must
// name a user.
func (s *Server) GetTags(c *fiber.Ctx) error {
	ownerID := uint(0)
	if id := c.QueryInt("userId"); id > 0 {
		ownerID = uint(id)
	} else if id, ok := s.optionalUserID(c); ok {
		ownerID = id
	}
	if ownerID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Provide a user ID or log in"))
	}

	tags, err := s.tagService.ListTags(c.Context(), ownerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(tags)
}

// GetTagList handles GET /api/ispeak/tag/list?userId=
func (s *Server) GetTagList(c *fiber.Ctx) error {
	userID := c.QueryInt("userId")
	if userID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User ID is required"))
	}

	tags, err := s.tagService.ListTags(c.Context(), uint(userID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(tags)
}

// GetTagsByPage handles GET /api/ispeak/tag/getByPage
func (s *Server) GetTagsByPage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c)

	result, err := s.tagService.PageTags(c.Context(), userID, page.Limit(), page.Offset())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// CreateTag handles POST /api/ispeak/tag/add
func (s *Server) CreateTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		BgColor     string `json:"bg_color"`
		OrderNo     int    `json:"order_no"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.tagService.CreateTag(c.Context(), service.CreateTagInput{
		OwnerID:     userID,
		Name:        req.Name,
		BgColor:     req.BgColor,
		OrderNo:     req.OrderNo,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}

// UpdateTag handles POST /api/ispeak/tag/update
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ID          uint    `json:"id"`
		Name        *string `json:"name"`
		BgColor     *string `json:"bg_color"`
		OrderNo     *int    `json:"order_no"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Tag ID is required"))
	}

	result, err := s.tagService.UpdateTag(c.Context(), service.UpdateTagInput{
		OwnerID: userID,
		TagID:   req.ID,
		Patch: models.TagPatch{
			Name:        req.Name,
			BgColor:     req.BgColor,
			OrderNo:     req.OrderNo,
			Description: req.Description,
		},
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// DeleteTag handles DELETE /api/ispeak/tag/:id
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.tagService.DeleteTag(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}
