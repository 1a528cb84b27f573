package service

import (
	"context"
	"net/url"
	"time"

	"kkapi/internal/models"
	"kkapi/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Title     string
	Link      string
	Author    string
	Avatar    string
	Rule      string
	Published time.Time
	Updated   time.Time
}

// PostPage is the envelope for paginated feed reads.
type PostPage struct {
	Total int64          `json:"total"`
	Items []*models.Post `json:"items"`
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) (*PostPage, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &PostPage{Total: total, Items: posts}, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Link == "" {
		return nil, models.NewValidationError("Link is required")
	}
	if _, err := url.ParseRequestURI(in.Link); err != nil {
		return nil, models.NewValidationError("Link must be a valid URL")
	}
	now := time.Now()
	published := in.Published
	if published.IsZero() {
		published = now
	}
	updated := in.Updated
	if updated.IsZero() {
		updated = published
	}
	post := &models.Post{
		Title:     in.Title,
		Link:      in.Link,
		Author:    in.Author,
		Avatar:    in.Avatar,
		Rule:      in.Rule,
		Published: published,
		Updated:   updated,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
