package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/content-gateway/internal/auth"
	"github.com/spec-kit/content-gateway/internal/config"
	"github.com/spec-kit/content-gateway/internal/domain"
	"github.com/spec-kit/content-gateway/internal/events"
	"github.com/spec-kit/content-gateway/internal/repository"
	apperrors "github.com/spec-kit/content-gateway/pkg/util"
)

// AuthService coordinates login, purchase and logout flows. The server
// holds no session state; every flow ends in an issued or discarded token.
type AuthService struct {
	users        repository.UserRepository
	tokens       *auth.TokenManager
	dispatcher   events.Dispatcher
	loginTTL     time.Duration
	purchasedTTL time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		tokens:       deps.Tokens,
		dispatcher:   deps.Dispatcher,
		loginTTL:     cfg.Auth.AccessTokenTTL(),
		purchasedTTL: cfg.Auth.PurchasedTokenTTL(),
	}
}

// Login authenticates against the user store and issues a short-lived
// credential carrying the purchase flag the account currently holds.
// Lookup and password failures collapse to the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status != domain.UserStatusActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Username, user.HasPurchased, s.loginTTL)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.LoginPayload{Username: user.Username})
	return user, token, exp, nil
}

// Purchase marks the subject's account purchased and issues a replacement
// long-lived credential with the entitlement set. The old credential is
// not revoked; it simply ages out.
func (s *AuthService) Purchase(ctx context.Context, subjectID string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("unknown subject")
	}

	if !user.HasPurchased {
		user.HasPurchased = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, "", time.Time{}, apperrors.NewInternalError(err)
		}
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Username, true, s.purchasedTTL)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventPurchaseCompleted, user.ID, events.PurchaseCompletedPayload{Username: user.Username})
	return user, token, exp, nil
}

// Logout records the event; invalidation is client-side cookie removal
// plus token expiry, nothing is stored server-side.
func (s *AuthService) Logout(ctx context.Context, resolved auth.ResolvedCredential) {
	if resolved.State != auth.CredentialValid {
		return
	}
	s.publish(ctx, events.EventUserLoggedOut, resolved.Credential.SubjectID,
		events.LoginPayload{Username: resolved.Credential.Username})
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
