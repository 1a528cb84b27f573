package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "alice")

	user, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	result, err := repo.UpdateProfile(ctx, user.ID, map[string]interface{}{
		"nickname": "Alice Q",
		"link":     "https://alice.example",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ModifiedCount)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Q", stored.Nickname)
	assert.Equal(t, "https://alice.example", stored.Link)

	// Same values: matched without modified.
	result, err = repo.UpdateProfile(ctx, user.ID, map[string]interface{}{
		"nickname": "Alice Q",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Equal(t, int64(0), result.ModifiedCount)

	// Unknown user: no match at all.
	result, err = repo.UpdateProfile(ctx, 9999, map[string]interface{}{
		"nickname": "ghost",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.MatchedCount)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	result, err := repo.UpdatePassword(ctx, user.ID, "new-digest")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ModifiedCount)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-digest", stored.Password)
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
}
