package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-gateway/internal/api/dto"
	"github.com/spec-kit/content-gateway/internal/auth"
	"github.com/spec-kit/content-gateway/internal/service"
	apperrors "github.com/spec-kit/content-gateway/pkg/util"
)

// AuthHandler exposes login, purchase and session endpoints.
type AuthHandler struct {
	svc    *service.AuthService
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(svc *service.AuthService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, token, exp, err := h.svc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	setAuthCookie(c, token, exp)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":            user.ID,
				"username":      user.Username,
				"has_purchased": user.HasPurchased,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Purchase handles POST /purchase. It requires a valid credential and
// responds with the replacement credential carrying the entitlement.
func (h *AuthHandler) Purchase(c *fiber.Ctx) error {
	resolved := auth.ResolveCredential(c, h.tokens)
	if resolved.State != auth.CredentialValid {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, token, exp, err := h.svc.Purchase(c.UserContext(), resolved.Credential.SubjectID)
	if err != nil {
		return err
	}

	setAuthCookie(c, token, exp)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":            user.ID,
				"username":      user.Username,
				"has_purchased": user.HasPurchased,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// CheckPurchase handles GET /check-purchase. Bad or absent credentials
// degrade to the unauthenticated view; this endpoint never errors.
func (h *AuthHandler) CheckPurchase(c *fiber.Ctx) error {
	resolved := auth.ResolveCredential(c, h.tokens)

	resp := dto.PurchaseStatusResponse{}
	if resolved.State == auth.CredentialValid {
		resp.Authenticated = true
		resp.HasPurchased = resolved.Credential.HasPurchased
		resp.Username = resolved.Credential.Username
	}
	return c.JSON(resp)
}

// Logout handles GET /logout by instructing the client to drop its cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	resolved := auth.ResolveCredential(c, h.tokens)
	h.svc.Logout(c.UserContext(), resolved)

	clearAuthCookie(c)
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "logged out"},
	})
}

func setAuthCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
