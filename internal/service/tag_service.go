package service

import (
	"context"
	"strings"

	"kkapi/internal/models"
	"kkapi/internal/repository"
)

type TagService struct {
	tagRepo repository.TagRepository
}

type CreateTagInput struct {
	OwnerID     uint
	Name        string
	BgColor     string
	OrderNo     int
	Description string
}

type UpdateTagInput struct {
	OwnerID uint
	TagID   uint
	Patch   models.TagPatch
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

func (s *TagService) ListTags(ctx context.Context, ownerID uint) ([]*models.Tag, error) {
	return s.tagRepo.ListByOwner(ctx, ownerID)
}

func (s *TagService) PageTags(ctx context.Context, ownerID uint, limit, offset int) (*models.TagPage, error) {
	return s.tagRepo.PageByOwner(ctx, ownerID, limit, offset)
}

func (s *TagService) CreateTag(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	taken, err := s.tagRepo.NameTaken(ctx, in.OwnerID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("A tag with that name already exists")
	}
	tag := &models.Tag{
		UserID:      in.OwnerID,
		Name:        name,
		BgColor:     in.BgColor,
		OrderNo:     in.OrderNo,
		Description: in.Description,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) UpdateTag(ctx context.Context, in UpdateTagInput) (*models.UpdateResult, error) {
	if in.Patch.Empty() {
		return nil, models.NewValidationError("Nothing to update")
	}
	if in.Patch.Name != nil {
		name := strings.TrimSpace(*in.Patch.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		in.Patch.Name = &name
		taken, err := s.tagRepo.NameTaken(ctx, in.OwnerID, name, in.TagID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("A tag with that name already exists")
		}
	}
	result, err := s.tagRepo.Update(ctx, in.TagID, in.OwnerID, in.Patch)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, models.NewNotFoundOrForbiddenError("Tag")
	}
	return &result, nil
}

// DeleteTag removes an owned tag. Speak entries referencing it keep
// their tag_id; list joins simply render no tag for them afterwards.
func (s *TagService) DeleteTag(ctx context.Context, ownerID, tagID uint) (*models.DeleteResult, error) {
	result, err := s.tagRepo.Delete(ctx, tagID, ownerID)
	if err != nil {
		return nil, err
	}
	if result.DeletedCount == 0 {
		return nil, models.NewNotFoundOrForbiddenError("Tag")
	}
	return &result, nil
}
