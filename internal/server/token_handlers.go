package server

import (
	"kkapi/internal/models"
	"kkapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTokens handles GET /api/user/token/
func (s *Server) GetTokens(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	tokens, err := s.tokenService.ListTokens(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(tokens)
}

// CreateToken handles POST /api/user/token/add
func (s *Server) CreateToken(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title string `json:"title"`
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	token, err := s.tokenService.CreateToken(c.Context(), service.CreateTokenInput{
		OwnerID: userID,
		Title:   req.Title,
		Value:   req.Value,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(token)
}

// UpdateToken handles PATCH /api/user/token/update
func (s *Server) UpdateToken(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ID    uint    `json:"id"`
		Title *string `json:"title"`
		Value *string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token ID is required"))
	}

	result, err := s.tokenService.UpdateToken(c.Context(), service.UpdateTokenInput{
		OwnerID: userID,
		TokenID: req.ID,
		Patch: models.TokenPatch{
			Title: req.Title,
			Value: req.Value,
		},
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// DeleteToken handles DELETE /api/user/token/delete/:id
func (s *Server) DeleteToken(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.tokenService.DeleteToken(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}
