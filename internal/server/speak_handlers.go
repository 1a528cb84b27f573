package server

import (
	"kkapi/internal/models"
	"kkapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

type speakRequest struct {
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Visibility  models.Visibility `json:"visibility"`
	Tag         uint              `json:"tag"`
	Commentable *bool             `json:"commentable"`
}

func (r speakRequest) toInput(authorID uint) service.CreateSpeakInput {
	return service.CreateSpeakInput{
		AuthorID:    authorID,
		Title:       r.Title,
		Content:     r.Content,
		Visibility:  r.Visibility,
		TagID:       r.Tag,
		Commentable: r.Commentable,
	}
}

// GetSpeaks handles GET /api/ispeak/?author=&page=&pageSize=
// Public listing with per-entry visibility for the (optional) viewer.
func (s *Server) GetSpeaks(c *fiber.Ctx) error {
	author := c.QueryInt("author")
	if author <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Author is required"))
	}
	page := parsePagination(c)

	var viewerID *uint
	if id, ok := s.optionalUserID(c); ok {
		viewerID = &id
	}

	result, err := s.speakService.ListSpeaks(c.Context(), service.ListSpeaksInput{
		AuthorID: uint(author),
		ViewerID: viewerID,
		Limit:    page.Limit(),
		Offset:   page.Offset(),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// GetSpeaksAdmin handles GET /api/ispeak/getByPage
// The author filter defaults to the requester but any author is accepted.
func (s *Server) GetSpeaksAdmin(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c)

	authorID := userID
	if author := c.QueryInt("author"); author > 0 {
		authorID = uint(author)
	}

	result, err := s.speakService.ListSpeaksAdmin(c.Context(), service.ListSpeaksAdminInput{
		AuthorID: &authorID,
		Limit:    page.Limit(),
		Offset:   page.Offset(),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// CreateSpeak handles POST /api/ispeak/add
func (s *Server) CreateSpeak(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req speakRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.speakService.CreateSpeak(c.Context(), req.toInput(userID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// CreateSpeakByToken handles POST /api/ispeak/addByToken
// Authenticated by an opaque API token in the body instead of a session.
func (s *Server) CreateSpeakByToken(c *fiber.Ctx) error {
	var req struct {
		speakRequest
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.speakService.CreateSpeakViaToken(c.Context(), req.Token, req.toInput(0))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UpdateSpeak handles PATCH /api/ispeak/update
func (s *Server) UpdateSpeak(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ID          uint               `json:"id"`
		Title       *string            `json:"title"`
		Content     *string            `json:"content"`
		Visibility  *models.Visibility `json:"visibility"`
		Tag         *uint              `json:"tag"`
		Commentable *bool              `json:"commentable"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Speak ID is required"))
	}

	result, err := s.speakService.UpdateSpeak(c.Context(), service.UpdateSpeakInput{
		RequesterID: userID,
		SpeakID:     req.ID,
		Patch: models.SpeakPatch{
			Title:       req.Title,
			Content:     req.Content,
			Visibility:  req.Visibility,
			TagID:       req.Tag,
			Commentable: req.Commentable,
		},
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// UpdateSpeakStatus handles PATCH /api/ispeak/status/
func (s *Server) UpdateSpeakStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ID          uint `json:"id"`
		Commentable bool `json:"commentable"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Speak ID is required"))
	}

	result, err := s.speakService.UpdateCommentable(c.Context(), userID, req.ID, req.Commentable)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// DeleteSpeak handles DELETE /api/ispeak/:id
func (s *Server) DeleteSpeak(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.speakService.DeleteSpeak(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// GetSpeak handles GET /api/ispeak/get/:id
// No authentication and no redaction: the record is returned verbatim.
func (s *Server) GetSpeak(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.speakService.GetSpeak(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(entry)
}
