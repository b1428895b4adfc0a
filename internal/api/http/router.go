package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soldesk/ticket-service/internal/api/http/handlers"
	"github.com/soldesk/ticket-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Admin          *handlers.AdminHandler
	SupportTypes   *handlers.SupportTypesHandler
	AuthMiddleware *auth.AuthMiddleware
	Throttle       fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	app.Get("/support-types", cfg.SupportTypes.List)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/support-request", cfg.Throttle, cfg.Tickets.CreateSupportRequest)
	tickets.Get("/user/:userId", cfg.Tickets.ListUserTickets)
	tickets.Get("/metrics/:userId", cfg.Tickets.UserMetrics)
	tickets.Delete("/:codigoConsulta", cfg.Tickets.DeleteTicket)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Post("/create-user", cfg.Admin.CreateUser)
	admin.Get("/tickets", cfg.Admin.ListTickets)
	admin.Post("/assign-technician", cfg.Admin.AssignTechnician)
	admin.Post("/close-ticket", cfg.Admin.CloseTicket)
	admin.Delete("/ticket/:codigoConsulta", cfg.Admin.DeleteTicket)
	admin.Get("/metrics", cfg.Admin.GlobalMetrics)
	admin.Get("/metrics/technician/:alfNum", cfg.Admin.TechnicianMetrics)
	admin.Get("/overview", cfg.Admin.Overview)
}
