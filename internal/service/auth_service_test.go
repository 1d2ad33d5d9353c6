package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/content-gateway/internal/auth"
	"github.com/spec-kit/content-gateway/internal/config"
	"github.com/spec-kit/content-gateway/internal/domain"
	"github.com/spec-kit/content-gateway/internal/events"
	"github.com/spec-kit/content-gateway/internal/repository"
	"github.com/spec-kit/content-gateway/internal/service"
	apperrors "github.com/spec-kit/content-gateway/pkg/util"
)

func newAuthService(t *testing.T) (*service.AuthService, repository.UserRepository, *auth.TokenManager, *domain.User) {
	t.Helper()

	repo := repository.NewMemoryUserRepository()
	hash, err := auth.HashPassword("password", bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		Username:     "demo",
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	tokens, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)

	cfg := config.Config{Auth: config.AuthConfig{
		AccessTokenTTLMinutes:    60,
		PurchasedTokenTTLMinutes: 120,
	}}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   repo,
		Tokens:     tokens,
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	return svc, repo, tokens, user
}

func TestLoginIssuesUnpurchasedCredential(t *testing.T) {
	svc, _, tokens, _ := newAuthService(t)

	user, token, exp, err := svc.Login(context.Background(), "demo", "password")
	require.NoError(t, err)
	assert.Equal(t, "demo", user.Username)
	assert.False(t, exp.IsZero())

	cred, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, cred.SubjectID)
	assert.False(t, cred.HasPurchased)
}

func TestLoginFailuresCollapse(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, _, _, wrongPassword := svc.Login(context.Background(), "demo", "nope")
	_, _, _, unknownUser := svc.Login(context.Background(), "ghost", "password")

	for _, err := range []error{wrongPassword, unknownUser} {
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
		assert.Equal(t, "invalid credentials", domainErr.Message)
	}
}

func TestPurchaseIssuesReplacementCredential(t *testing.T) {
	svc, repo, tokens, seeded := newAuthService(t)

	_, loginToken, _, err := svc.Login(context.Background(), "demo", "password")
	require.NoError(t, err)

	user, purchaseToken, _, err := svc.Purchase(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.True(t, user.HasPurchased)
	assert.NotEqual(t, loginToken, purchaseToken)

	cred, err := tokens.Verify(purchaseToken)
	require.NoError(t, err)
	assert.True(t, cred.HasPurchased)

	stored, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasPurchased)

	// The old credential is not revoked; it simply carries the stale flag
	// until it expires.
	old, err := tokens.Verify(loginToken)
	require.NoError(t, err)
	assert.False(t, old.HasPurchased)
}

func TestPurchaseUnknownSubject(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	_, _, _, err := svc.Purchase(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}
