package repository

import (
	"context"
	"testing"

	"kkapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_ListByOwner_Order(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	require.NoError(t, repo.Create(ctx, &models.Tag{UserID: owner.ID, Name: "Work", OrderNo: 2}))
	require.NoError(t, repo.Create(ctx, &models.Tag{UserID: owner.ID, Name: "Life", OrderNo: 1}))
	require.NoError(t, repo.Create(ctx, &models.Tag{UserID: other.ID, Name: "Life", OrderNo: 0}))

	tags, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Life", tags[0].Name)
	assert.Equal(t, "Work", tags[1].Name)
}

func TestTagRepository_PageByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Tag{
			UserID: owner.ID, Name: string(rune('a' + i)), OrderNo: i,
		}))
	}

	page, err := repo.PageByOwner(ctx, owner.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].Name)
}

func TestTagRepository_ExistsAndNameTaken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	tag := createTestTag(t, db, owner.ID, "Life")

	exists, err := repo.Exists(ctx, tag.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, exists)

	taken, err := repo.NameTaken(ctx, owner.ID, "Life", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// Names are scoped per owner.
	taken, err = repo.NameTaken(ctx, other.ID, "Life", 0)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.NameTaken(ctx, owner.ID, "Life", tag.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestTagRepository_OwnedMutations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	tag := createTestTag(t, db, owner.ID, "Life")

	name := "Growth"

	result, err := repo.Update(ctx, tag.ID, intruder.ID, models.TagPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.MatchedCount)

	result, err = repo.Update(ctx, tag.ID, owner.ID, models.TagPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ModifiedCount)

	// Same value again: a match but not a modification.
	result, err = repo.Update(ctx, tag.ID, owner.ID, models.TagPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Equal(t, int64(0), result.ModifiedCount)

	del, err := repo.Delete(ctx, tag.ID, intruder.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), del.DeletedCount)

	del, err = repo.Delete(ctx, tag.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
}
