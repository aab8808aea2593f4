package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/queenify/attendance-portal/internal/application/dto"
	"github.com/queenify/attendance-portal/internal/application/session"
)

// Named redirect destinations. The gate table is the only thing that picks
// between them.
const (
	RouteLogin     = "/login"
	RouteDashboard = "/dashboard" // default authenticated view
	RouteAdmin     = "/admin"
)

// ViewGate guards a browser-facing view route. The pure session.Decide owns
// the decision; this middleware only translates it to HTTP: pending renders a
// 503 indicator, redirects become 302s.
func ViewGate(sessions *session.Manager, gate session.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch session.Decide(gate, sessions.State()) {
		case session.DecisionPending:
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"view": "pending"})
		case session.DecisionRedirectLogin:
			return c.Redirect(RouteLogin, fiber.StatusFound)
		case session.DecisionRedirectDefault:
			return c.Redirect(RouteDashboard, fiber.StatusFound)
		default:
			return c.Next()
		}
	}
}

// APIGate guards an API route with the same gate table, answering status codes
// instead of redirects.
func APIGate(sessions *session.Manager, gate session.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch session.Decide(gate, sessions.State()) {
		case session.DecisionPending:
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_PENDING", Message: "sesi sedang dipulihkan"})
		case session.DecisionRedirectLogin:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "silakan login terlebih dahulu"})
		case session.DecisionRedirectDefault:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Anda tidak memiliki izin untuk mengakses halaman ini."})
		default:
			return c.Next()
		}
	}
}
