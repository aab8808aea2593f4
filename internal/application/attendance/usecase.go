// Package attendance (application layer) drives check-in/check-out submission
// and log fetching against the remote attendance collaborator, on behalf of the
// current session user.
package attendance

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/queenify/attendance-portal/internal/application/session"
	"github.com/queenify/attendance-portal/internal/domain"
	domattendance "github.com/queenify/attendance-portal/internal/domain/attendance"
	"github.com/queenify/attendance-portal/internal/domain/entity"
	"github.com/queenify/attendance-portal/pkg/logger"
)

// Fixed user-facing messages for submission outcomes.
const (
	MsgAccountInactive = "Akun Anda tidak aktif. Hubungi admin untuk mengaktifkan akun."
	MsgMissingUserID   = "User ID tidak ditemukan. Silakan login ulang."
	MsgSubmitFailed    = "Gagal mencatat kehadiran"
)

// DefaultLogLimit matches the original portal's admin fetch size.
const DefaultLogLimit = 200

// UseCase coordinates the attendance collaborator with the session.
type UseCase struct {
	svc      Service
	identity session.IdentityService
	sessions *session.Manager
	reports  ReportGenerator
	log      *logger.Logger

	// submitting enforces the single outstanding check-in/check-out call.
	submitting atomic.Bool

	// snapshot holds the last completed logs fetch. Concurrent fetches may
	// race; whichever completes last wins, per the portal's refresh semantics.
	mu       sync.Mutex
	snapshot []entity.AttendanceLog
}

// NewUseCase builds the use case. reports may be nil when export is disabled.
func NewUseCase(svc Service, identity session.IdentityService, sessions *session.Manager, reports ReportGenerator, log *logger.Logger) *UseCase {
	return &UseCase{svc: svc, identity: identity, sessions: sessions, reports: reports, log: log}
}

// Submit records a check-in/check-out for the current session user. Inactive
// accounts and missing ids are refused locally, before any network call.
// At most one submission may be outstanding; a concurrent call returns
// domain.ErrSubmitInFlight.
func (uc *UseCase) Submit(ctx context.Context, eventType, category, notes string) (entity.AttendanceLog, error) {
	user := uc.sessions.User()
	if user == nil {
		return entity.AttendanceLog{}, domain.ErrUnauthenticated
	}
	if !user.IsActive() {
		return entity.AttendanceLog{}, domain.ErrAccountInactive
	}
	if user.ID == "" {
		return entity.AttendanceLog{}, domain.ErrMissingUserID
	}
	if !entity.ValidEventType(eventType) || !entity.ValidCategory(category) {
		return entity.AttendanceLog{}, domain.ErrInvalidInput
	}

	if !uc.submitting.CompareAndSwap(false, true) {
		return entity.AttendanceLog{}, domain.ErrSubmitInFlight
	}
	defer uc.submitting.Store(false)

	rec, err := uc.svc.Submit(ctx, uc.sessions.Token(ctx), SubmitInput{
		UserID:    user.ID,
		EventType: eventType,
		Category:  category,
		Notes:     notes,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Str("event", eventType).Msg("attendance submit failed")
		return entity.AttendanceLog{}, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("event", eventType).Str("category", category).Msg("attendance recorded")
	return rec, nil
}

// FetchLogs fetches up to limit logs from the collaborator and makes the
// completed response the authoritative local snapshot.
func (uc *UseCase) FetchLogs(ctx context.Context, limit int) ([]entity.AttendanceLog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	logs, err := uc.svc.FetchLogs(ctx, uc.sessions.Token(ctx), limit)
	if err != nil {
		return nil, err
	}
	uc.mu.Lock()
	uc.snapshot = logs
	uc.mu.Unlock()
	return logs, nil
}

// Snapshot returns the last completed logs fetch (possibly empty).
func (uc *UseCase) Snapshot() []entity.AttendanceLog {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshot
}

// OwnLogs fetches logs and keeps only the current session user's records,
// comparing ids in string form.
func (uc *UseCase) OwnLogs(ctx context.Context, limit int) ([]entity.AttendanceLog, error) {
	user := uc.sessions.User()
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	logs, err := uc.FetchLogs(ctx, limit)
	if err != nil {
		return nil, err
	}
	own := make([]entity.AttendanceLog, 0, len(logs))
	for _, l := range logs {
		if l.UserIDString() == user.ID {
			own = append(own, l)
		}
	}
	return own, nil
}

// Directory fetches the user roster from the identity collaborator.
func (uc *UseCase) Directory(ctx context.Context) ([]entity.UserProfile, error) {
	return uc.identity.FetchAllUsers(ctx, uc.sessions.Token(ctx))
}

// FilteredView is the admin log view: the full fetched set reduced by the
// filter criteria, plus the directory used for name resolution.
type FilteredView struct {
	Logs      []entity.AttendanceLog
	Directory []entity.UserProfile
	Total     int
}

// Filtered fetches logs and the directory, then applies the filter engine.
// A failed directory fetch degrades to an empty roster (names fall back to
// "User #<id>") rather than blocking the view.
func (uc *UseCase) Filtered(ctx context.Context, criteria domattendance.FilterCriteria, limit int) (FilteredView, error) {
	logs, err := uc.FetchLogs(ctx, limit)
	if err != nil {
		return FilteredView{}, err
	}
	directory, err := uc.Directory(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("roster fetch failed, resolving names from an empty directory")
		directory = nil
	}
	return FilteredView{
		Logs:      domattendance.Apply(logs, criteria, directory),
		Directory: directory,
		Total:     len(logs),
	}, nil
}

// Export renders the filtered admin view as a PDF document.
func (uc *UseCase) Export(ctx context.Context, criteria domattendance.FilterCriteria, limit int) ([]byte, error) {
	if uc.reports == nil {
		return nil, domain.ErrInvalidInput
	}
	view, err := uc.Filtered(ctx, criteria, limit)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateLogReport(ctx, view, criteria)
}
