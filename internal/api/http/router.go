package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-gateway/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Content *handlers.ContentHandler

	// PublicDir holds the gallery shell served at the root. Empty skips
	// static registration (tests).
	PublicDir string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/purchase", cfg.Auth.Purchase)
	app.Get("/check-purchase", cfg.Auth.CheckPurchase)
	app.Get("/logout", cfg.Auth.Logout)

	app.Get("/api/backgrounds", cfg.Content.ListBackgrounds)
	app.Get("/api/premium", cfg.Content.ListPremium)

	app.Get("/assets/:filename", cfg.Content.Asset)
	app.Get("/content/:filename", cfg.Content.GetContent)
	app.Get("/serve-preview/:filename", cfg.Content.ServePreview)
	app.Get("/premium/full/:filename", cfg.Content.FullContent)

	if cfg.PublicDir != "" {
		app.Static("/", cfg.PublicDir)
	}
}
