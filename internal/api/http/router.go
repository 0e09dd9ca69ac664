package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-gateway/internal/api/http/handlers"
	"github.com/spec-kit/news-gateway/internal/auth"
	"github.com/spec-kit/news-gateway/internal/domain"
	"github.com/spec-kit/news-gateway/internal/rpc"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Articles       *handlers.ArticlesHandler
	Tokens         *handlers.TokensHandler
	Soap           *rpc.Handler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/soap", cfg.Soap.ServeWSDL)
	app.Post("/soap", cfg.Soap.HandleCall)

	rest := app.Group("/api/rest")
	rest.Get("/articles", cfg.Articles.List)
	rest.Get("/articles/categories", cfg.Articles.ListGrouped)
	rest.Get("/articles/category/:categoryId", cfg.Articles.ListByCategory)
	rest.Get("/articles/:id", cfg.Articles.GetByID)

	admin := app.Group("/api/admin")
	admin.Post("/soap-tokens/verify", cfg.Tokens.Verify)

	protected := admin.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	protected.Get("/soap-tokens", cfg.Tokens.List)
	protected.Post("/soap-tokens", cfg.Tokens.Create)
	protected.Delete("/soap-tokens/:id", cfg.Tokens.Revoke)
}
