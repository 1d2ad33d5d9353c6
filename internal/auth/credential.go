package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-gateway/internal/domain"
)

// CookieName is the HTTP-only cookie carrying the credential token.
const CookieName = "auth_token"

// CredentialState classifies the outcome of credential resolution. Every
// consumer must handle all three branches.
type CredentialState int

const (
	CredentialAbsent CredentialState = iota
	CredentialInvalid
	CredentialValid
)

// ResolvedCredential is the result of extracting and verifying the token
// on a request. Credential is set only when State is CredentialValid; Err
// holds the verification failure when State is CredentialInvalid.
type ResolvedCredential struct {
	State      CredentialState
	Credential *domain.Credential
	Err        error
}

// ResolveCredential extracts the raw token from the request and verifies
// it. The cookie takes precedence over the Authorization header when both
// are present.
func ResolveCredential(c *fiber.Ctx, tokens *TokenManager) ResolvedCredential {
	raw := c.Cookies(CookieName)
	if raw == "" {
		raw = bearerToken(c.Get(fiber.HeaderAuthorization))
	}
	if raw == "" {
		return ResolvedCredential{State: CredentialAbsent}
	}

	cred, err := tokens.Verify(raw)
	if err != nil {
		return ResolvedCredential{State: CredentialInvalid, Err: err}
	}
	return ResolvedCredential{State: CredentialValid, Credential: cred}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
