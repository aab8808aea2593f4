package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	appattendance "github.com/queenify/attendance-portal/internal/application/attendance"
	"github.com/queenify/attendance-portal/internal/application/dto"
	"github.com/queenify/attendance-portal/internal/domain"
	"github.com/queenify/attendance-portal/internal/domain/entity"
	"github.com/queenify/attendance-portal/pkg/logger"
)

// bannerClearMS is the fixed auto-clear interval for transient submission
// banners.
const bannerClearMS = 4000

// AttendanceHandler handles check-in/check-out submission and the user's own
// history.
type AttendanceHandler struct {
	uc  *appattendance.UseCase
	log *logger.Logger
}

// NewAttendanceHandler builds the handler.
func NewAttendanceHandler(uc *appattendance.UseCase, log *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{uc: uc, log: log}
}

// Submit godoc
// @Summary      Record a check-in or check-out
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitRequest  true  "event_type, category, notes"
// @Success      201   {object}  dto.SubmitResponse
// @Failure      403   {object}  dto.BannerError
// @Failure      409   {object}  dto.BannerError
// @Router       /api/attendance/logs [post]
func (h *AttendanceHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}

	rec, err := h.uc.Submit(c.Context(), in.EventType, in.Category, in.Notes)
	if err != nil {
		return h.submitError(c, err)
	}

	label := "Check In"
	if rec.EventType == entity.EventCheckOut {
		label = "Check Out"
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitResponse{
		Success: true,
		Message: fmt.Sprintf("Berhasil %s - %s", label, rec.Category),
		Record:  rec,
	})
}

// submitError maps submission failures to transient banner payloads.
func (h *AttendanceHandler) submitError(c *fiber.Ctx, err error) error {
	banner := func(status int, code, message string) error {
		return c.Status(status).JSON(dto.BannerError{Code: code, Message: message, ClearAfterMS: bannerClearMS})
	}
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "silakan login terlebih dahulu"})
	case errors.Is(err, domain.ErrAccountInactive):
		return banner(fiber.StatusForbidden, "ACCOUNT_INACTIVE", appattendance.MsgAccountInactive)
	case errors.Is(err, domain.ErrMissingUserID):
		return banner(fiber.StatusBadRequest, "MISSING_USER_ID", appattendance.MsgMissingUserID)
	case errors.Is(err, domain.ErrInvalidInput):
		return banner(fiber.StatusBadRequest, "VALIDATION", "event_type atau kategori tidak dikenal")
	case errors.Is(err, domain.ErrSubmitInFlight):
		return banner(fiber.StatusConflict, "SUBMIT_IN_FLIGHT", "Presensi sebelumnya masih diproses")
	}

	// Collaborator rejections carry their own message; transport failures get
	// the generic one.
	msg := appattendance.MsgSubmitFailed
	var collab *domain.CollaboratorError
	if errors.As(err, &collab) && collab.Message != "" {
		msg = collab.Message
	}
	return banner(fiber.StatusBadGateway, "SUBMIT_FAILED", msg)
}

// OwnLogs godoc
// @Summary      The session user's attendance history
// @Tags         attendance
// @Produce      json
// @Param        limit  query  int  false  "max records fetched upstream"
// @Success      200  {object}  dto.LogsResponse
// @Router       /api/attendance/logs [get]
func (h *AttendanceHandler) OwnLogs(c *fiber.Ctx) error {
	logs, err := h.uc.OwnLogs(c.Context(), c.QueryInt("limit"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "silakan login terlebih dahulu"})
		}
		// Fetch failures degrade to an empty history rather than blocking the view.
		h.log.Warn().Err(err).Msg("own logs fetch failed, serving empty history")
		logs = nil
	}
	if logs == nil {
		logs = []entity.AttendanceLog{}
	}
	return c.JSON(dto.LogsResponse{Data: logs, Total: len(logs)})
}
