package repository

import (
	"context"

	"kkapi/internal/cache"
	"kkapi/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	// ListByOwner returns the owner's tags ordered by order number.
	// Served cache-aside; mutations invalidate the owner's list.
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.Tag, error)
	PageByOwner(ctx context.Context, ownerID uint, limit, offset int) (*models.TagPage, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// NameTaken reports whether the owner already has a tag with that
	// name, excluding excludeID (0 to exclude nothing).
	NameTaken(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, id, ownerID uint, patch models.TagPatch) (models.UpdateResult, error)
	Delete(ctx context.Context, id, ownerID uint) (models.DeleteResult, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return err
	}
	cache.InvalidateTagList(ctx, tag.UserID)
	return nil
}

func (r *tagRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := cache.Aside(ctx, cache.TagListKey(ownerID), &tags, cache.TagListTTL, func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", ownerID).
			Order("order_no ASC").
			Find(&tags).Error
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) PageByOwner(ctx context.Context, ownerID uint, limit, offset int) (*models.TagPage, error) {
	query := r.db.WithContext(ctx).Model(&models.Tag{}).Where("user_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*models.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("order_no ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &models.TagPage{Total: total, Items: items}, nil
}

func (r *tagRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tagRepository) NameTaken(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("user_id = ? AND name = ?", ownerID, name)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tagRepository) Update(ctx context.Context, id, ownerID uint, patch models.TagPatch) (models.UpdateResult, error) {
	cs := newChangeSet()
	if patch.Name != nil {
		cs.set("name", *patch.Name)
	}
	if patch.BgColor != nil {
		cs.set("bg_color", *patch.BgColor)
	}
	if patch.OrderNo != nil {
		cs.set("order_no", *patch.OrderNo)
	}
	if patch.Description != nil {
		cs.set("description", *patch.Description)
	}
	if cs.empty() {
		return models.UpdateResult{Acknowledged: true}, nil
	}

	result, err := ownedUpdate(r.db.WithContext(ctx), &models.Tag{}, "user_id", id, ownerID, cs)
	if err == nil && result.ModifiedCount > 0 {
		cache.InvalidateTagList(ctx, ownerID)
	}
	return result, err
}

func (r *tagRepository) Delete(ctx context.Context, id, ownerID uint) (models.DeleteResult, error) {
	result, err := ownedDelete(r.db.WithContext(ctx), &models.Tag{}, "user_id", id, ownerID)
	if err == nil && result.DeletedCount > 0 {
		cache.InvalidateTagList(ctx, ownerID)
	}
	return result, err
}
