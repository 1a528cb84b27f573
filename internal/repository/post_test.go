package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kkapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTestPosts(t *testing.T, repo PostRepository, n int) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := repo.Create(ctx, &models.Post{
			Title:     fmt.Sprintf("post %d", i),
			Link:      fmt.Sprintf("https://blog.example/%d", i),
			Author:    "friend",
			Published: base.Add(time.Duration(i) * time.Hour),
			Updated:   base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedTestPosts(t, repo, 5)

	posts, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 5)
	assert.Equal(t, "post 4", posts[0].Title)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].Published.After(posts[i-1].Published))
	}
}

func TestPostRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedTestPosts(t, repo, 5)

	posts, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "post 2", posts[0].Title)
	assert.Equal(t, "post 1", posts[1].Title)
}

func TestPostRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	seedTestPosts(t, repo, 3)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
