package http

import (
	"github.com/gofiber/fiber/v2"

	appattendance "github.com/queenify/attendance-portal/internal/application/attendance"
	"github.com/queenify/attendance-portal/internal/application/session"
	"github.com/queenify/attendance-portal/pkg/logger"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Sessions   *session.Manager
	Attendance *appattendance.UseCase
	Log        *logger.Logger
}

// Router registers the portal routes: gated browser views plus the JSON API.
func Router(app *fiber.App, deps RouterDeps) {
	views := NewViewHandler(deps.Sessions)
	authHandler := NewAuthHandler(deps.Sessions)
	attendanceHandler := NewAttendanceHandler(deps.Attendance, deps.Log)
	adminHandler := NewAdminHandler(deps.Attendance, deps.Log)

	// Views. Each route's gate owns the redirect decision.
	app.Get(RouteLogin, ViewGate(deps.Sessions, session.GatePublicOnly), views.Login)
	app.Get(RouteDashboard, ViewGate(deps.Sessions, session.GateProtected), views.Dashboard)
	app.Get(RouteAdmin, ViewGate(deps.Sessions, session.GateAdminOnly), views.Admin)

	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)

	// Attendance (authenticated)
	attGroup := api.Group("/attendance", APIGate(deps.Sessions, session.GateProtected))
	attGroup.Post("/logs", attendanceHandler.Submit)
	attGroup.Get("/logs", attendanceHandler.OwnLogs)

	// Admin (admin role only)
	adminGroup := api.Group("/admin", APIGate(deps.Sessions, session.GateAdminOnly))
	adminGroup.Get("/logs", adminHandler.Logs)
	adminGroup.Get("/logs/export", adminHandler.Export)
	adminGroup.Get("/users", adminHandler.Users)

	// Unknown paths land on the default view.
	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect(RouteDashboard, fiber.StatusFound)
	})
}
