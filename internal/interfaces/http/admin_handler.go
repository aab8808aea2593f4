package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appattendance "github.com/queenify/attendance-portal/internal/application/attendance"
	"github.com/queenify/attendance-portal/internal/application/dto"
	domattendance "github.com/queenify/attendance-portal/internal/domain/attendance"
	"github.com/queenify/attendance-portal/pkg/logger"
)

// AdminHandler serves the admin log view, the roster and the PDF export.
type AdminHandler struct {
	uc  *appattendance.UseCase
	log *logger.Logger
}

// NewAdminHandler builds the handler.
func NewAdminHandler(uc *appattendance.UseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, log: log}
}

func criteriaFromQuery(c *fiber.Ctx) domattendance.FilterCriteria {
	return domattendance.FilterCriteria{
		Date:   c.Query("date"),
		UserID: c.Query("user_id"),
		Name:   c.Query("name"),
	}
}

// Logs godoc
// @Summary      All attendance logs, filtered
// @Tags         admin
// @Produce      json
// @Param        date     query  string  false  "calendar date, 2006-01-02"
// @Param        user_id  query  string  false  "user id substring"
// @Param        name     query  string  false  "display name substring"
// @Success      200  {object}  dto.AdminLogsResponse
// @Router       /api/admin/logs [get]
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	view, err := h.uc.Filtered(c.Context(), criteriaFromQuery(c), c.QueryInt("limit"))
	if err != nil {
		// The admin view degrades to an empty table when the collaborator is
		// unreachable; the stale snapshot is not served as if it were fresh.
		h.log.Warn().Err(err).Msg("admin logs fetch failed, serving empty view")
		return c.JSON(dto.AdminLogsResponse{Data: []dto.AdminLog{}})
	}

	rows := make([]dto.AdminLog, 0, len(view.Logs))
	for _, l := range view.Logs {
		rows = append(rows, dto.AdminLog{
			AttendanceLog: l,
			DisplayName:   domattendance.ResolveName(l.UserIDString(), view.Directory),
		})
	}
	return c.JSON(dto.AdminLogsResponse{Data: rows, Total: view.Total, Filtered: len(rows)})
}

// Users godoc
// @Summary      The user roster
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.UsersResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	roster, err := h.uc.Directory(c.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("roster fetch failed, serving empty roster")
		roster = nil
	}
	users := make([]dto.UserResponse, 0, len(roster))
	for i := range roster {
		users = append(users, *dto.ToUserResponse(&roster[i]))
	}
	return c.JSON(dto.UsersResponse{Data: users, Total: len(users)})
}

// Export godoc
// @Summary      Filtered logs as a PDF report
// @Tags         admin
// @Produce      application/pdf
// @Param        date     query  string  false  "calendar date, 2006-01-02"
// @Param        user_id  query  string  false  "user id substring"
// @Param        name     query  string  false  "display name substring"
// @Success      200  {file}  binary
// @Router       /api/admin/logs/export [get]
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	doc, err := h.uc.Export(c.Context(), criteriaFromQuery(c), c.QueryInt("limit"))
	if err != nil {
		h.log.Error().Err(err).Msg("log export failed")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: "Gagal membuat laporan"})
	}

	filename := fmt.Sprintf("laporan-kehadiran-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(doc)
}
