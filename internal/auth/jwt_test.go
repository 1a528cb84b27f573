package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kkapi/internal/models"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)
	token, err := tm.IssueWithTTL(1, "bob", -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(7, "carol")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_Garbage(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	for _, tok := range []string{"", "not.a.token", "a.b"} {
		_, err := tm.Verify(tok)
		assert.Error(t, err, "token %q should not verify", tok)
	}
}

func TestTokenManager_NoSecret(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("", time.Hour)
	_, err := tm.Issue(1, "dave")
	assert.Error(t, err)
}
