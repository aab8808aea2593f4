package attendance

import (
	"context"

	domattendance "github.com/queenify/attendance-portal/internal/domain/attendance"
	"github.com/queenify/attendance-portal/internal/domain/entity"
)

// SubmitInput is one check-in/check-out submission.
type SubmitInput struct {
	UserID    string
	EventType string // CHECK_IN / CHECK_OUT
	Category  string // WFO / WFH / SAKIT / IZIN
	Notes     string
}

// ReportGenerator renders the admin's filtered log view as a downloadable
// document.
type ReportGenerator interface {
	GenerateLogReport(ctx context.Context, view FilteredView, criteria domattendance.FilterCriteria) ([]byte, error)
}

// Service is the outbound port to the remote attendance collaborator. The
// adapter normalizes the service's loose list shapes (bare array, data, logs)
// before anything crosses this boundary.
type Service interface {
	Submit(ctx context.Context, token string, in SubmitInput) (entity.AttendanceLog, error)
	FetchLogs(ctx context.Context, token string, limit int) ([]entity.AttendanceLog, error)
}
