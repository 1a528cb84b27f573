package server

import (
	"context"
	"time"

	"kkapi/internal/models"
	"kkapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// InitUser handles GET /api/user/init?userName=
func (s *Server) InitUser(c *fiber.Ctx) error {
	userName := c.Query("userName", "admin")

	user, err := s.userService.InitUser(c.Context(), service.InitUserInput{
		Username: userName,
		Password: c.Query("password"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/user/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.userService.Login(c.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// GetUsers handles GET /api/user/
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, err := s.userService.ListUsers(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// GetUserID handles GET /api/user/id
func (s *Server) GetUserID(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	return c.JSON(fiber.Map{"id": userID})
}

// GetUserInfo handles GET /api/user/getUserInfo
func (s *Server) GetUserInfo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUser(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateProfile handles PATCH /api/user/update
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Nickname    *string `json:"nickname"`
		Avatar      *string `json:"avatar"`
		Description *string `json:"description"`
		Link        *string `json:"link"`
		Email       *string `json:"email"`
		HomePath    *string `json:"homePath"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:      userID,
		Nickname:    req.Nickname,
		Avatar:      req.Avatar,
		Description: req.Description,
		Link:        req.Link,
		Email:       req.Email,
		HomePath:    req.HomePath,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// ChangePassword handles PATCH /api/user/password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		OldPassword    string `json:"oldPassword"`
		Password       string `json:"password"`
		RepeatPassword string `json:"rpassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.userService.ChangePassword(c.Context(), service.ChangePasswordInput{
		UserID:         userID,
		OldPassword:    req.OldPassword,
		NewPassword:    req.Password,
		RepeatPassword: req.RepeatPassword,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}
