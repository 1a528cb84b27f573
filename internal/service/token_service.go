package service

import (
	"context"
	"strings"

	"kkapi/internal/models"
	"kkapi/internal/repository"
)

type TokenService struct {
	tokenRepo repository.TokenRepository
}

type CreateTokenInput struct {
	OwnerID uint
	Title   string
	Value   string
}

type UpdateTokenInput struct {
	OwnerID uint
	TokenID uint
	Patch   models.TokenPatch
}

func NewTokenService(tokenRepo repository.TokenRepository) *TokenService {
	return &TokenService{tokenRepo: tokenRepo}
}

func (s *TokenService) ListTokens(ctx context.Context, ownerID uint) ([]*models.APIToken, error) {
	return s.tokenRepo.ListByOwner(ctx, ownerID)
}

// CreateToken registers an opaque token under the owner. Titles are
// unique per owner, so repeated creation with the same title conflicts.
func (s *TokenService) CreateToken(ctx context.Context, in CreateTokenInput) (*models.APIToken, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Value == "" {
		return nil, models.NewValidationError("Value is required")
	}
	taken, err := s.tokenRepo.TitleTaken(ctx, in.OwnerID, title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("A token with that title already exists")
	}
	token := &models.APIToken{
		UserID: in.OwnerID,
		Title:  title,
		Value:  in.Value,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *TokenService) UpdateToken(ctx context.Context, in UpdateTokenInput) (*models.UpdateResult, error) {
	if in.Patch.Empty() {
		return nil, models.NewValidationError("Nothing to update")
	}
	if in.Patch.Title != nil {
		title := strings.TrimSpace(*in.Patch.Title)
		if title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		in.Patch.Title = &title
		taken, err := s.tokenRepo.TitleTaken(ctx, in.OwnerID, title, in.TokenID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("A token with that title already exists")
		}
	}
	if in.Patch.Value != nil && *in.Patch.Value == "" {
		return nil, models.NewValidationError("Value cannot be empty")
	}
	result, err := s.tokenRepo.Update(ctx, in.TokenID, in.OwnerID, in.Patch)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, models.NewNotFoundOrForbiddenError("API token")
	}
	return &result, nil
}

func (s *TokenService) DeleteToken(ctx context.Context, ownerID, tokenID uint) (*models.DeleteResult, error) {
	result, err := s.tokenRepo.Delete(ctx, tokenID, ownerID)
	if err != nil {
		return nil, err
	}
	if result.DeletedCount == 0 {
		return nil, models.NewNotFoundOrForbiddenError("API token")
	}
	return &result, nil
}
