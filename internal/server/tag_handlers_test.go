package server

import (
	"fmt"
	"net/http"
	"testing"

	"kkapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTags(t *testing.T) {
	s, app := newTestServer(t)
	alice := createAccount(t, s, "alice", "pw")
	bob := createAccount(t, s, "bob", "pw")
	createAccountTag(t, s, alice.ID, "Life")
	createAccountTag(t, s, alice.ID, "Work")
	createAccountTag(t, s, bob.ID, "Music")

	// Anonymous with an explicit owner.
	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/ispeak/tag/?userId=%d", alice.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tags []models.Tag
	decodeJSON(t, resp, &tags)
	assert.Len(t, tags, 2)

	// Logged in without a userId falls back to the requester's tags.
	resp = doJSON(t, app, http.MethodGet, "/api/ispeak/tag/", sessionToken(t, s, bob), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "Music", tags[0].Name)

	// Anonymous without a userId has nothing to list.
	resp = doJSON(t, app, http.MethodGet, "/api/ispeak/tag/", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetTagList_RequiresUserID(t *testing.T) {
	s, app := newTestServer(t)
	alice := createAccount(t, s, "alice", "pw")
	createAccountTag(t, s, alice.ID, "Life")

	resp := doJSON(t, app, http.MethodGet, "/api/ispeak/tag/list", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/ispeak/tag/list?userId=%d", alice.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetTagsByPage(t *testing.T) {
	s, app := newTestServer(t)
	alice := createAccount(t, s, "alice", "pw")
	for i := 0; i < 5; i++ {
		createAccountTag(t, s, alice.ID, fmt.Sprintf("tag-%d", i))
	}

	resp := doJSON(t, app, http.MethodGet, "/api/ispeak/tag/getByPage?page=2&pageSize=2", sessionToken(t, s, alice), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page models.TagPage
	decodeJSON(t, resp, &page)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Items, 2)
}

func TestCreateTag(t *testing.T) {
	s, app := newTestServer(t)
	alice := createAccount(t, s, "alice", "pw")
	token := sessionToken(t, s, alice)

	resp := doJSON(t, app, http.MethodPost, "/api/ispeak/tag/add", token, map[string]interface{}{
		"name":     "  Life  ",
		"bg_color": "#67C23A",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tag models.Tag
	decodeJSON(t, resp, &tag)
	assert.Equal(t, "Life", tag.Name)
	assert.Equal(t, alice.ID, tag.UserID)

	// Duplicate name for the same owner.
	resp = doJSON(t, app, http.MethodPost, "/api/ispeak/tag/add", token, map[string]interface{}{
		"name": "Life",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// The same name under another owner is fine.
	bob := createAccount(t, s, "bob", "pw")
	resp = doJSON(t, app, http.MethodPost, "/api/ispeak/tag/add", sessionToken(t, s, bob), map[string]interface{}{
		"name": "Life",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// Blank name.
	resp = doJSON(t, app, http.MethodPost, "/api/ispeak/tag/add", token, map[string]interface{}{
		"name": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestUpdateTag(t *testing.T) {
	s, app := newTestServer(t)
	alice := createAccount(t, s, "alice", "pw")
	bob := createAccount(t, s, "bob", "pw")
	tag := createAccountTag(t, s, alice.ID, "Life")
	createAccountTag(t, s, alice.ID, "Work")

	// Rename onto an existing sibling name.
	resp := doJSON(t, app, http.MethodPost, "/api/ispeak/tag/update", sessionToken(t, s, alice), map[string]interface{}{
		"id":   tag.ID,
		"name": "Work",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// Another user's tag reads as not found.
	resp = doJSON(t, app, http.MethodPost, "/api/ispeak/tag/update", sessionToken(t, s, bob), map[string]interface{}{
		"id":   tag.ID,
		"name": "Stolen",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/ispeak/tag/update", sessionToken(t, s, alice), map[string]interface{}{
		"id":       tag.ID,
		"name":     "Daily",
		"order_no": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.UpdateResult
	decodeJSON(t, resp, &result)
	assert.Equal(t, int64(1), result.ModifiedCount)

	var stored models.Tag
	require.NoError(t, s.db.First(&stored, tag.ID).Error)
	assert.Equal(t, "Daily", stored.Name)
	assert.Equal(t, 3, stored.OrderNo)
}

func TestDeleteTag(t *testing.T) {
	s, app := newTestServer(t)
	alice := createAccount(t, s, "alice", "pw")
	bob := createAccount(t, s, "bob", "pw")
	tag := createAccountTag(t, s, alice.ID, "Life")

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/ispeak/tag/%d", tag.ID), sessionToken(t, s, bob), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/ispeak/tag/%d", tag.ID), sessionToken(t, s, alice), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.DeleteResult
	decodeJSON(t, resp, &result)
	assert.Equal(t, int64(1), result.DeletedCount)
}
