package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/content-gateway/internal/auth"
)

func newManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager("")
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := newManager(t)

	token, exp, err := tm.Issue("user-1", "demo", false, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	cred, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", cred.SubjectID)
	assert.Equal(t, "demo", cred.Username)
	assert.False(t, cred.HasPurchased)
	assert.True(t, cred.IssuedAt.Before(cred.ExpiresAt))
}

func TestIssueCarriesPurchaseFlag(t *testing.T) {
	tm := newManager(t)

	token, _, err := tm.Issue("user-1", "demo", true, time.Hour)
	require.NoError(t, err)

	cred, err := tm.Verify(token)
	require.NoError(t, err)
	assert.True(t, cred.HasPurchased)
}

func TestVerifyExpired(t *testing.T) {
	tm := newManager(t)

	token, _, err := tm.Issue("user-1", "demo", true, -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestVerifyExpiredAtBoundary(t *testing.T) {
	tm := newManager(t)

	// Zero TTL puts expiresAt at the issue instant; the boundary is
	// inclusive, so the token must already be expired.
	token, exp, err := tm.Issue("user-1", "demo", true, 0)
	require.NoError(t, err)
	require.False(t, exp.After(time.Now()))

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestVerifyMalformed(t *testing.T) {
	tm := newManager(t)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed, "token %q", token)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	tm := newManager(t)

	token, _, err := tm.Issue("user-1", "demo", true, time.Hour)
	require.NoError(t, err)

	replacement := byte('A')
	if token[len(token)-1] == replacement {
		replacement = 'E'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err = tm.Verify(tampered)
	assert.ErrorIs(t, err, auth.ErrTokenSignatureInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	tm := newManager(t)
	other, err := auth.NewTokenManager("other-secret")
	require.NoError(t, err)

	token, _, err := other.Issue("user-1", "demo", true, time.Hour)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenSignatureInvalid)
}
