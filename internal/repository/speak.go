package repository

import (
	"context"
	"errors"

	"kkapi/internal/cache"
	"kkapi/internal/models"

	"gorm.io/gorm"
)

// SpeakRepository defines the interface for speak entry data operations.
type SpeakRepository interface {
	Create(ctx context.Context, entry *models.SpeakEntry) error
	Count(ctx context.Context, authorID *uint) (int64, error)
	// List returns entries newest first, optionally filtered by author,
	// with author and tag display fields joined in.
	List(ctx context.Context, authorID *uint, limit, offset int) ([]*models.SpeakEntry, error)
	FindByID(ctx context.Context, id uint) (*models.SpeakEntry, error)
	Update(ctx context.Context, id, authorID uint, patch models.SpeakPatch) (models.UpdateResult, error)
	SetCommentable(ctx context.Context, id, authorID uint, commentable bool) (models.UpdateResult, error)
	Delete(ctx context.Context, id, authorID uint) (models.DeleteResult, error)
}

type speakRepository struct {
	db *gorm.DB
}

// NewSpeakRepository creates a new speak entry repository.
func NewSpeakRepository(db *gorm.DB) SpeakRepository {
	return &speakRepository{db: db}
}

// withDisplay joins author and tag display info in a single query.
// LEFT JOINs keep entries readable after a tag is deleted.
func (r *speakRepository) withDisplay(tx *gorm.DB) *gorm.DB {
	return tx.Model(&models.SpeakEntry{}).
		Select("speak_entries.*, " +
			"users.nickname AS author_nickname, users.avatar AS author_avatar, " +
			"tags.name AS tag_name, tags.bg_color AS tag_bg_color").
		Joins("LEFT JOIN users ON users.id = speak_entries.author_id").
		Joins("LEFT JOIN tags ON tags.id = speak_entries.tag_id")
}

func (r *speakRepository) Create(ctx context.Context, entry *models.SpeakEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *speakRepository) Count(ctx context.Context, authorID *uint) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.SpeakEntry{})
	if authorID != nil {
		tx = tx.Where("author_id = ?", *authorID)
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

func (r *speakRepository) List(ctx context.Context, authorID *uint, limit, offset int) ([]*models.SpeakEntry, error) {
	tx := r.withDisplay(r.db.WithContext(ctx))
	if authorID != nil {
		tx = tx.Where("speak_entries.author_id = ?", *authorID)
	}
	var entries []*models.SpeakEntry
	err := tx.
		Order("speak_entries.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *speakRepository) FindByID(ctx context.Context, id uint) (*models.SpeakEntry, error) {
	var entry models.SpeakEntry
	err := cache.Aside(ctx, cache.SpeakKey(id), &entry, cache.SpeakTTL, func() error {
		return r.db.WithContext(ctx).First(&entry, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *speakRepository) Update(ctx context.Context, id, authorID uint, patch models.SpeakPatch) (models.UpdateResult, error) {
	cs := newChangeSet()
	if patch.Title != nil {
		cs.set("title", *patch.Title)
	}
	if patch.Content != nil {
		cs.set("content", *patch.Content)
	}
	if patch.Visibility != nil {
		cs.set("visibility", *patch.Visibility)
	}
	if patch.TagID != nil {
		cs.set("tag_id", *patch.TagID)
	}
	if patch.Commentable != nil {
		cs.set("commentable", *patch.Commentable)
	}
	if cs.empty() {
		return models.UpdateResult{Acknowledged: true}, nil
	}

	result, err := ownedUpdate(r.db.WithContext(ctx), &models.SpeakEntry{}, "author_id", id, authorID, cs)
	if err == nil && result.ModifiedCount > 0 {
		cache.InvalidateSpeak(ctx, id)
	}
	return result, err
}

func (r *speakRepository) SetCommentable(ctx context.Context, id, authorID uint, commentable bool) (models.UpdateResult, error) {
	cs := newChangeSet()
	cs.set("commentable", commentable)

	result, err := ownedUpdate(r.db.WithContext(ctx), &models.SpeakEntry{}, "author_id", id, authorID, cs)
	if err == nil && result.ModifiedCount > 0 {
		cache.InvalidateSpeak(ctx, id)
	}
	return result, err
}

func (r *speakRepository) Delete(ctx context.Context, id, authorID uint) (models.DeleteResult, error) {
	result, err := ownedDelete(r.db.WithContext(ctx), &models.SpeakEntry{}, "author_id", id, authorID)
	if err == nil && result.DeletedCount > 0 {
		cache.InvalidateSpeak(ctx, id)
	}
	return result, err
}
