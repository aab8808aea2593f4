package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/queenify/attendance-portal/internal/application/dto"
	"github.com/queenify/attendance-portal/internal/application/session"
)

// ViewHandler serves the view descriptors behind the gated routes. Each
// descriptor names the view and carries the session state the page renders
// from; the gate middleware has already decided the route may render.
type ViewHandler struct {
	sessions *session.Manager
}

// NewViewHandler builds the handler.
func NewViewHandler(sessions *session.Manager) *ViewHandler {
	return &ViewHandler{sessions: sessions}
}

func (h *ViewHandler) render(c *fiber.Ctx, view string) error {
	st := h.sessions.State()
	return c.JSON(fiber.Map{
		"view": view,
		"session": dto.SessionResponse{
			Loading:       st.Loading,
			Authenticated: st.User != nil,
			Admin:         st.User != nil && st.User.IsAdmin(),
			User:          dto.ToUserResponse(st.User),
			Error:         st.Err,
		},
	})
}

// Login renders the login view.
func (h *ViewHandler) Login(c *fiber.Ctx) error {
	return h.render(c, "login")
}

// Dashboard renders the attendance dashboard view.
func (h *ViewHandler) Dashboard(c *fiber.Ctx) error {
	return h.render(c, "dashboard")
}

// Admin renders the admin log view.
func (h *ViewHandler) Admin(c *fiber.Ctx) error {
	return h.render(c, "admin")
}
