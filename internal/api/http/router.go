package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Categories     *handlers.CategoriesHandler
	Orders         *handlers.OrdersHandler
	Conversations  *handlers.ConversationsHandler
	Alerts         *handlers.AlertsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	products := api.Group("/products", cfg.AuthMiddleware.Handle)
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.Products.Create)
	products.Put("/:id", cfg.Products.Update)
	products.Patch("/:id/toggle", cfg.Products.Toggle)
	products.Delete("/:id", cfg.Products.Delete)

	categories := api.Group("/categories", cfg.AuthMiddleware.Handle)
	categories.Get("/", cfg.Categories.List)
	categories.Post("/", cfg.Categories.Create)
	categories.Put("/:id", cfg.Categories.Update)
	categories.Delete("/:id", cfg.Categories.Delete)

	orders := api.Group("/orders", cfg.AuthMiddleware.Handle)
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Post("/", cfg.Orders.Create)
	orders.Patch("/:id/status", cfg.Orders.UpdateStatus)
	orders.Patch("/:id/printed", cfg.Orders.MarkPrinted)

	conversations := api.Group("/conversations", cfg.AuthMiddleware.Handle)
	conversations.Get("/", cfg.Conversations.List)
	conversations.Get("/config/bot-status", cfg.Conversations.BotStatus)
	conversations.Patch("/:phone/claim", cfg.Conversations.Claim)
	conversations.Patch("/:phone/release", cfg.Conversations.Release)

	alerts := api.Group("/alerts", cfg.AuthMiddleware.Handle)
	alerts.Get("/", cfg.Alerts.List)
	alerts.Get("/unread-count", cfg.Alerts.UnreadCount)
	alerts.Patch("/:id/read", cfg.Alerts.MarkRead)
	alerts.Post("/", cfg.Alerts.Broadcast)
}
