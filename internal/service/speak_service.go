package service

import (
	"context"
	"strings"

	"kkapi/internal/middleware"
	"kkapi/internal/models"
	"kkapi/internal/repository"
)

type SpeakService struct {
	speakRepo repository.SpeakRepository
	tagRepo   repository.TagRepository
	tokenRepo repository.TokenRepository
}

type CreateSpeakInput struct {
	AuthorID    uint
	Title       string
	Content     string
	Visibility  models.Visibility
	TagID       uint
	Commentable *bool
}

type ListSpeaksInput struct {
	AuthorID uint
	ViewerID *uint
	Limit    int
	Offset   int
}

type ListSpeaksAdminInput struct {
	AuthorID *uint
	Limit    int
	Offset   int
}

type UpdateSpeakInput struct {
	RequesterID uint
	SpeakID     uint
	Patch       models.SpeakPatch
}

func NewSpeakService(
	speakRepo repository.SpeakRepository,
	tagRepo repository.TagRepository,
	tokenRepo repository.TokenRepository,
) *SpeakService {
	return &SpeakService{
		speakRepo: speakRepo,
		tagRepo:   tagRepo,
		tokenRepo: tokenRepo,
	}
}

const maxSpeakContentLen = 10000

func (s *SpeakService) validateCreate(in *CreateSpeakInput) error {
	if strings.TrimSpace(in.Content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxSpeakContentLen {
		return models.NewValidationError("Content too long (max 10000 characters)")
	}
	if !in.Visibility.Valid() {
		return models.NewValidationError("Invalid visibility")
	}
	if in.TagID == 0 {
		return models.NewValidationError("Tag is required")
	}
	return nil
}

// CreateSpeak creates an entry for an authenticated author. The tag is
// checked in a separate read, so a tag deleted in between leaves a
// dangling reference that list joins tolerate.
func (s *SpeakService) CreateSpeak(ctx context.Context, in CreateSpeakInput) (*models.SpeakEntry, error) {
	if err := s.validateCreate(&in); err != nil {
		return nil, err
	}
	exists, err := s.tagRepo.Exists(ctx, in.TagID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewValidationError("Tag does not exist")
	}

	entry := &models.SpeakEntry{
		AuthorID:   in.AuthorID,
		Title:      in.Title,
		Content:    in.Content,
		Visibility: in.Visibility,
		TagID:      in.TagID,
	}
	entry.Commentable = in.Commentable == nil || *in.Commentable
	if err := s.speakRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	middleware.SpeakCreated.WithLabelValues("session").Inc()
	return entry, nil
}

// CreateSpeakViaToken resolves an opaque API token to its owner and
// creates the entry on the owner's behalf. Only tokens titled for the
// speak feature are accepted, and the lookup is global: any user's
// matching token authenticates as that user.
func (s *SpeakService) CreateSpeakViaToken(ctx context.Context, tokenValue string, in CreateSpeakInput) (*models.SpeakEntry, error) {
	if tokenValue == "" {
		return nil, models.NewUnauthorizedError("API token is required")
	}
	token, err := s.tokenRepo.FindByTitleValue(ctx, models.SpeakTokenTitle, tokenValue)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, models.NewUnauthorizedError("Invalid API token")
	}
	if err := s.validateCreate(&in); err != nil {
		return nil, err
	}
	exists, err := s.tagRepo.Exists(ctx, in.TagID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewValidationError("Tag does not exist")
	}

	entry := &models.SpeakEntry{
		AuthorID:   token.UserID,
		Title:      in.Title,
		Content:    in.Content,
		Visibility: in.Visibility,
		TagID:      in.TagID,
	}
	entry.Commentable = in.Commentable == nil || *in.Commentable
	if err := s.speakRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	middleware.SpeakCreated.WithLabelValues("api_token").Inc()
	return entry, nil
}

// ListSpeaks is the public listing: newest first with display fields
// joined in, and each entry redacted for the viewer.
func (s *SpeakService) ListSpeaks(ctx context.Context, in ListSpeaksInput) (*models.SpeakPage, error) {
	authorID := in.AuthorID
	total, err := s.speakRepo.Count(ctx, &authorID)
	if err != nil {
		return nil, err
	}
	entries, err := s.speakRepo.List(ctx, &authorID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	redactSpeakList(entries, in.ViewerID)
	return &models.SpeakPage{
		Total:    total,
		Items:    entries,
		ViewerID: in.ViewerID,
	}, nil
}

// ListSpeaksAdmin is the authenticated listing. No redaction is applied,
// and the author filter is taken as given.
func (s *SpeakService) ListSpeaksAdmin(ctx context.Context, in ListSpeaksAdminInput) (*models.SpeakAdminPage, error) {
	total, err := s.speakRepo.Count(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	entries, err := s.speakRepo.List(ctx, in.AuthorID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &models.SpeakAdminPage{Total: total, Items: entries}, nil
}

// GetSpeak returns the entry verbatim, or a not-found error.
func (s *SpeakService) GetSpeak(ctx context.Context, id uint) (*models.SpeakEntry, error) {
	entry, err := s.speakRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, models.NewNotFoundError("Speak entry", id)
	}
	return entry, nil
}

func (s *SpeakService) UpdateSpeak(ctx context.Context, in UpdateSpeakInput) (*models.UpdateResult, error) {
	if in.Patch.Empty() {
		return nil, models.NewValidationError("Nothing to update")
	}
	if in.Patch.Content != nil && strings.TrimSpace(*in.Patch.Content) == "" {
		return nil, models.NewValidationError("Content cannot be empty")
	}
	if in.Patch.Visibility != nil && !in.Patch.Visibility.Valid() {
		return nil, models.NewValidationError("Invalid visibility")
	}
	if in.Patch.TagID != nil {
		exists, err := s.tagRepo.Exists(ctx, *in.Patch.TagID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewValidationError("Tag does not exist")
		}
	}
	result, err := s.speakRepo.Update(ctx, in.SpeakID, in.RequesterID, in.Patch)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, models.NewNotFoundOrForbiddenError("Speak entry")
	}
	return &result, nil
}

// UpdateCommentable flips the comment switch on an owned entry. Setting
// the current value again matches without modifying.
func (s *SpeakService) UpdateCommentable(ctx context.Context, requesterID, speakID uint, commentable bool) (*models.UpdateResult, error) {
	result, err := s.speakRepo.SetCommentable(ctx, speakID, requesterID, commentable)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, models.NewNotFoundOrForbiddenError("Speak entry")
	}
	return &result, nil
}

func (s *SpeakService) DeleteSpeak(ctx context.Context, requesterID, speakID uint) (*models.DeleteResult, error) {
	result, err := s.speakRepo.Delete(ctx, speakID, requesterID)
	if err != nil {
		return nil, err
	}
	if result.DeletedCount == 0 {
		return nil, models.NewNotFoundOrForbiddenError("Speak entry")
	}
	return &result, nil
}
