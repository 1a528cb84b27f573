package repository

import (
	"context"
	"errors"

	"kkapi/internal/models"

	"gorm.io/gorm"
)

// TokenRepository defines the interface for API token data operations.
type TokenRepository interface {
	Create(ctx context.Context, token *models.APIToken) error
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.APIToken, error)
	GetByID(ctx context.Context, id uint) (*models.APIToken, error)
	// FindByTitleValue looks up a token by its (title, value) pair across
	// all owners. Returns nil on no match.
	FindByTitleValue(ctx context.Context, title, value string) (*models.APIToken, error)
	// TitleTaken reports whether the owner already has a token with that
	// title, excluding excludeID (0 to exclude nothing).
	TitleTaken(ctx context.Context, ownerID uint, title string, excludeID uint) (bool, error)
	Update(ctx context.Context, id, ownerID uint, patch models.TokenPatch) (models.UpdateResult, error)
	Delete(ctx context.Context, id, ownerID uint) (models.DeleteResult, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new API token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.APIToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.APIToken, error) {
	var tokens []*models.APIToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&tokens).Error
	return tokens, err
}

func (r *tokenRepository) GetByID(ctx context.Context, id uint) (*models.APIToken, error) {
	var token models.APIToken
	err := r.db.WithContext(ctx).First(&token, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) FindByTitleValue(ctx context.Context, title, value string) (*models.APIToken, error) {
	var token models.APIToken
	err := r.db.WithContext(ctx).
		Where("title = ? AND value = ?", title, value).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) TitleTaken(ctx context.Context, ownerID uint, title string, excludeID uint) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&models.APIToken{}).
		Where("user_id = ? AND title = ?", ownerID, title)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tokenRepository) Update(ctx context.Context, id, ownerID uint, patch models.TokenPatch) (models.UpdateResult, error) {
	cs := newChangeSet()
	if patch.Title != nil {
		cs.set("title", *patch.Title)
	}
	if patch.Value != nil {
		cs.set("value", *patch.Value)
	}
	if cs.empty() {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	return ownedUpdate(r.db.WithContext(ctx), &models.APIToken{}, "user_id", id, ownerID, cs)
}

func (r *tokenRepository) Delete(ctx context.Context, id, ownerID uint) (models.DeleteResult, error) {
	return ownedDelete(r.db.WithContext(ctx), &models.APIToken{}, "user_id", id, ownerID)
}
