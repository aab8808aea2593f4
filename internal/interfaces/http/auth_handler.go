package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/queenify/attendance-portal/internal/application/dto"
	"github.com/queenify/attendance-portal/internal/application/session"
)

// AuthHandler handles login, logout and session introspection.
type AuthHandler struct {
	sessions *session.Manager
}

// NewAuthHandler builds the handler.
func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login godoc
// @Summary      Sign in against the identity service
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.LoginResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email dan password wajib diisi"})
	}

	res := h.sessions.Login(c.Context(), in.Email, in.Password)
	if !res.Success {
		// Login failures render inline near the form, so the message rides the
		// response body rather than a banner.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.LoginResponse{Success: false, Error: res.Error})
	}

	redirect := RouteDashboard
	if res.User.IsAdmin() {
		redirect = RouteAdmin
	}
	return c.JSON(dto.LoginResponse{
		Success:  true,
		User:     dto.ToUserResponse(res.User),
		Redirect: redirect,
	})
}

// Logout godoc
// @Summary      Clear the session
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// Session godoc
// @Summary      Current session state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	st := h.sessions.State()
	return c.JSON(dto.SessionResponse{
		Loading:       st.Loading,
		Authenticated: st.User != nil,
		Admin:         st.User != nil && st.User.IsAdmin(),
		User:          dto.ToUserResponse(st.User),
		Error:         st.Err,
	})
}
