package auth

import (
	"net/http"

	"github.com/spec-kit/content-gateway/internal/content"
)

// Mode selects how unauthenticated access to gated full content is
// reported: browse-style routes redirect to the login page, API-style
// routes return a structured error.
type Mode int

const (
	ModeAPI Mode = iota
	ModeBrowse
)

// Effect is the outcome kind of an access decision.
type Effect int

const (
	EffectAllow Effect = iota
	EffectDeny
	EffectRedirect
)

// Decision is the ephemeral result of the authorization predicate. It is
// computed per request and never persisted.
type Decision struct {
	Effect   Effect
	Status   int
	Code     string
	Message  string
	Location string
}

// LoginPath receives browse-mode redirects for unauthenticated callers.
const LoginPath = "/login.html"

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool {
	return d.Effect == EffectAllow
}

// Allow grants access.
func Allow() Decision {
	return Decision{Effect: EffectAllow}
}

// Deny refuses access with a structured status and code.
func Deny(status int, code, message string) Decision {
	return Decision{Effect: EffectDeny, Status: status, Code: code, Message: message}
}

func redirectToLogin() Decision {
	return Decision{Effect: EffectRedirect, Status: http.StatusFound, Location: LoginPath}
}

// Decide applies the access table for the resource class. It is a pure
// function of the resolved credential and the class; expired, malformed
// and bad-signature credentials are all treated as unauthenticated.
func Decide(resolved ResolvedCredential, class content.Class, mode Mode) Decision {
	switch class {
	case content.ClassPublicAsset, content.ClassFreePreview:
		return Allow()

	case content.ClassGatedPreview:
		if resolved.State == CredentialValid && resolved.Credential.HasPurchased {
			return Allow()
		}
		return Deny(http.StatusForbidden, "FORBIDDEN", "purchase required")

	case content.ClassGatedFull:
		if resolved.State == CredentialValid {
			if resolved.Credential.HasPurchased {
				return Allow()
			}
			return Deny(http.StatusForbidden, "FORBIDDEN", "purchase required")
		}
		if mode == ModeBrowse {
			return redirectToLogin()
		}
		return Deny(http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	return Deny(http.StatusForbidden, "FORBIDDEN", "unknown resource class")
}
