package repository

import (
	"context"

	"gorm.io/gorm"

	"kkapi/internal/models"
)

// PostRepository stores aggregated feed posts collected from friend links.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Count(ctx context.Context) (int64, error)
	// List returns posts newest first by publication time.
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("published DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}
