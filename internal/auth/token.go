package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/content-gateway/internal/domain"
)

// Verification failures. They are distinguished internally but collapse to
// a single unauthenticated signal at the HTTP boundary, so clients cannot
// probe which check failed.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
)

// TokenManager issues and verifies signed credential tokens. Both
// operations are pure functions of their inputs, the immutable secret and
// the clock; concurrent use needs no coordination.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a manager around the shared signing secret. An
// empty secret is a process-level misconfiguration.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret not configured")
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

// Claims describes the JWT payload.
type Claims struct {
	Username     string `json:"username"`
	HasPurchased bool   `json:"has_purchased"`
	jwt.RegisteredClaims
}

// Issue builds and signs a credential token for the subject.
func (tm *TokenManager) Issue(subjectID, username string, hasPurchased bool, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Username:     username,
		HasPurchased: hasPurchased,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates the token, returning the credential it
// carries. Expiry is compared at second granularity; a token presented
// exactly at expiresAt is already expired.
func (tm *TokenManager) Verify(tokenStr string) (*domain.Credential, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	cred := &domain.Credential{
		SubjectID:    claims.Subject,
		Username:     claims.Username,
		HasPurchased: claims.HasPurchased,
	}
	if claims.IssuedAt != nil {
		cred.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		cred.ExpiresAt = claims.ExpiresAt.Time
	}
	return cred, nil
}
