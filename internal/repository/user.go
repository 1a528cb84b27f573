package repository

import (
	"context"
	"errors"

	"kkapi/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) (models.UpdateResult, error)
	UpdatePassword(ctx context.Context, id uint, digest string) (models.UpdateResult, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// UpdateProfile applies the given column updates to the user's own record.
// Profile updates are scoped by id only; the id always comes from the
// verified session, never from the request body.
func (r *userRepository) UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) (models.UpdateResult, error) {
	cs := newChangeSet()
	for column, value := range updates {
		cs.set(column, value)
	}
	if cs.empty() {
		return models.UpdateResult{Acknowledged: true}, nil
	}

	clause, args := cs.changedClause()
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Where(clause, args...).
		Updates(cs.updates)
	if res.Error != nil {
		return models.UpdateResult{}, res.Error
	}

	out := models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.RowsAffected,
		ModifiedCount: res.RowsAffected,
	}
	if res.RowsAffected > 0 {
		return out, nil
	}

	var matched int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&matched).Error; err != nil {
		return models.UpdateResult{}, err
	}
	out.MatchedCount = matched
	return out, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, digest string) (models.UpdateResult, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password", digest)
	if res.Error != nil {
		return models.UpdateResult{}, res.Error
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.RowsAffected,
		ModifiedCount: res.RowsAffected,
	}, nil
}
