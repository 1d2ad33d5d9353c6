package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-gateway/internal/api/dto"
	"github.com/spec-kit/content-gateway/internal/auth"
	"github.com/spec-kit/content-gateway/internal/content"
	"github.com/spec-kit/content-gateway/internal/service"
)

// ContentHandler serves gated and ungated content through the gateway
// pipeline. Byte delivery is delegated to the content store; handlers
// only translate decisions into HTTP.
type ContentHandler struct {
	gateway *service.GatewayService
	tokens  *auth.TokenManager
}

// NewContentHandler constructs handler.
func NewContentHandler(gateway *service.GatewayService, tokens *auth.TokenManager) *ContentHandler {
	return &ContentHandler{gateway: gateway, tokens: tokens}
}

// GetContent handles GET /content/:filename, the API-style raw source
// fetch. Purchased callers receive the preview source as plain text.
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	filename := c.Params("filename")
	file, decision, err := h.gateway.Fetch(c.UserContext(), service.FetchRequest{
		Path:     "/content/" + filename,
		Filename: filename,
		Resolved: auth.ResolveCredential(c, h.tokens),
		Mode:     auth.ModeAPI,
	})
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return h.apply(c, decision)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Send(file.Data)
}

// ServePreview handles GET /serve-preview/:filename, the direct-serve
// preview route guarded by the referer gate.
func (h *ContentHandler) ServePreview(c *fiber.Ctx) error {
	filename := c.Params("filename")
	file, decision, err := h.gateway.Fetch(c.UserContext(), service.FetchRequest{
		Path:         "/serve-preview/" + filename,
		Filename:     filename,
		Resolved:     auth.ResolveCredential(c, h.tokens),
		Mode:         auth.ModeAPI,
		CheckReferer: true,
		Referer:      c.Get(fiber.HeaderReferer),
	})
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return h.apply(c, decision)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// FullContent handles GET /premium/full/:filename, the browse-style full
// content route: unauthenticated callers are redirected to the login page.
func (h *ContentHandler) FullContent(c *fiber.Ctx) error {
	filename := c.Params("filename")
	file, decision, err := h.gateway.Fetch(c.UserContext(), service.FetchRequest{
		Path:     "/premium/full/" + filename,
		Filename: filename,
		Resolved: auth.ResolveCredential(c, h.tokens),
		Mode:     auth.ModeBrowse,
	})
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return h.apply(c, decision)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// Asset handles GET /assets/:filename. Public, but it runs the same
// validation pipeline as every other class.
func (h *ContentHandler) Asset(c *fiber.Ctx) error {
	filename := c.Params("filename")
	file, decision, err := h.gateway.Fetch(c.UserContext(), service.FetchRequest{
		Path:     "/assets/" + filename,
		Filename: filename,
		Resolved: auth.ResolveCredential(c, h.tokens),
		Mode:     auth.ModeAPI,
	})
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return h.apply(c, decision)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// ListBackgrounds handles GET /api/backgrounds.
func (h *ContentHandler) ListBackgrounds(c *fiber.Ctx) error {
	return h.list(c, content.ClassPublicAsset, "/assets/")
}

// ListPremium handles GET /api/premium.
func (h *ContentHandler) ListPremium(c *fiber.Ctx) error {
	return h.list(c, content.ClassFreePreview, "/serve-preview/")
}

func (h *ContentHandler) list(c *fiber.Ctx, class content.Class, basePath string) error {
	names, err := h.gateway.List(c.UserContext(), class)
	if err != nil {
		return err
	}

	entries := make([]dto.FileEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, dto.FileEntry{Filename: name, Path: basePath + name})
	}
	return c.JSON(entries)
}

func (h *ContentHandler) apply(c *fiber.Ctx, decision auth.Decision) error {
	if decision.Effect == auth.EffectRedirect {
		return c.Redirect(decision.Location, decision.Status)
	}
	return apperrorFromDecision(decision)
}
