package attendance_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appattendance "github.com/queenify/attendance-portal/internal/application/attendance"
	"github.com/queenify/attendance-portal/internal/application/session"
	"github.com/queenify/attendance-portal/internal/domain"
	domattendance "github.com/queenify/attendance-portal/internal/domain/attendance"
	"github.com/queenify/attendance-portal/internal/domain/entity"
	"github.com/queenify/attendance-portal/pkg/logger"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

type fakeIdentity struct {
	users []entity.UserProfile
	err   error
}

func (f *fakeIdentity) Login(context.Context, string, string) (string, entity.UserProfile, error) {
	return "", entity.UserProfile{}, errors.New("not scripted")
}

func (f *fakeIdentity) FetchAllUsers(context.Context, string) ([]entity.UserProfile, error) {
	return f.users, f.err
}

// fakeService scripts the attendance collaborator. When block is non-nil,
// Submit parks on it after signaling started.
type fakeService struct {
	mu          sync.Mutex
	logs        []entity.AttendanceLog
	fetchErr    error
	submitErr   error
	submitCalls int
	block       chan struct{}
	started     chan struct{}
}

func (f *fakeService) Submit(_ context.Context, _ string, in appattendance.SubmitInput) (entity.AttendanceLog, error) {
	f.mu.Lock()
	f.submitCalls++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.submitErr != nil {
		return entity.AttendanceLog{}, f.submitErr
	}
	return entity.AttendanceLog{
		UserID:    in.UserID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		EventType: in.EventType,
		Category:  in.Category,
		Notes:     in.Notes,
	}, nil
}

func (f *fakeService) FetchLogs(context.Context, string, int) ([]entity.AttendanceLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.logs, nil
}

func sessionWith(t *testing.T, user entity.UserProfile) *session.Manager {
	t.Helper()
	store := newMemStore()
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), session.KeyToken, "tok"))
	require.NoError(t, store.Set(context.Background(), session.KeyUser, string(raw)))
	m := session.NewManager(&fakeIdentity{}, store, logger.Nop())
	m.Restore(context.Background())
	return m
}

func activeUser() entity.UserProfile {
	return entity.UserProfile{ID: "7", Name: "Naila", Email: "naila@mail.com", Status: entity.StatusActive}
}

func TestSubmit_RecordsForActiveUser(t *testing.T) {
	svc := &fakeService{}
	uc := appattendance.NewUseCase(svc, &fakeIdentity{}, sessionWith(t, activeUser()), nil, logger.Nop())

	rec, err := uc.Submit(context.Background(), entity.EventCheckIn, entity.CategoryWFO, "pagi")

	require.NoError(t, err)
	assert.Equal(t, "7", rec.UserIDString())
	assert.Equal(t, entity.EventCheckIn, rec.EventType)
	assert.Equal(t, "pagi", rec.Notes)
}

func TestSubmit_InactiveAccountRefusedBeforeNetwork(t *testing.T) {
	user := activeUser()
	user.Status = entity.StatusInactive
	svc := &fakeService{}
	uc := appattendance.NewUseCase(svc, &fakeIdentity{}, sessionWith(t, user), nil, logger.Nop())

	_, err := uc.Submit(context.Background(), entity.EventCheckIn, entity.CategoryWFO, "")

	assert.ErrorIs(t, err, domain.ErrAccountInactive)
	assert.Zero(t, svc.submitCalls, "inactive accounts must be refused before any network call")
}

func TestSubmit_UnknownStatusIsAlsoRefused(t *testing.T) {
	// "Not in the directory" and "inactive" stay distinct concerns, but for
	// submission gating anything other than active is refused.
	user := activeUser()
	user.Status = "suspended"
	uc := appattendance.NewUseCase(&fakeService{}, &fakeIdentity{}, sessionWith(t, user), nil, logger.Nop())

	_, err := uc.Submit(context.Background(), entity.EventCheckIn, entity.CategoryWFO, "")

	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestSubmit_MissingUserID(t *testing.T) {
	user := entity.UserProfile{Name: "Tanpa ID", Status: entity.StatusActive}
	svc := &fakeService{}
	uc := appattendance.NewUseCase(svc, &fakeIdentity{}, sessionWith(t, user), nil, logger.Nop())

	_, err := uc.Submit(context.Background(), entity.EventCheckOut, entity.CategoryWFH, "")

	assert.ErrorIs(t, err, domain.ErrMissingUserID)
	assert.Zero(t, svc.submitCalls)
}

func TestSubmit_ValidatesEventAndCategory(t *testing.T) {
	uc := appattendance.NewUseCase(&fakeService{}, &fakeIdentity{}, sessionWith(t, activeUser()), nil, logger.Nop())

	_, err := uc.Submit(context.Background(), "LUNCH", entity.CategoryWFO, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Submit(context.Background(), entity.EventCheckIn, "REMOTE", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmit_SecondConcurrentCallIsRefused(t *testing.T) {
	svc := &fakeService{block: make(chan struct{}), started: make(chan struct{}, 1)}
	uc := appattendance.NewUseCase(svc, &fakeIdentity{}, sessionWith(t, activeUser()), nil, logger.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := uc.Submit(context.Background(), entity.EventCheckIn, entity.CategoryWFO, "")
		done <- err
	}()
	<-svc.started

	_, err := uc.Submit(context.Background(), entity.EventCheckOut, entity.CategoryWFO, "")
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)

	close(svc.block)
	require.NoError(t, <-done)

	// The guard releases once the outstanding call completes.
	svc.block = nil
	_, err = uc.Submit(context.Background(), entity.EventCheckOut, entity.CategoryWFO, "")
	assert.NoError(t, err)
}

func TestOwnLogs_KeepsOnlySessionUserRecords(t *testing.T) {
	svc := &fakeService{logs: []entity.AttendanceLog{
		{UserID: float64(7), Timestamp: "2024-01-05T10:00:00Z", EventType: entity.EventCheckIn},
		{UserID: "8", Timestamp: "2024-01-05T10:05:00Z", EventType: entity.EventCheckIn},
		{UserID: "7", Timestamp: "2024-01-05T17:00:00Z", EventType: entity.EventCheckOut},
	}}
	uc := appattendance.NewUseCase(svc, &fakeIdentity{}, sessionWith(t, activeUser()), nil, logger.Nop())

	own, err := uc.OwnLogs(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, entity.EventCheckIn, own[0].EventType)
	assert.Equal(t, entity.EventCheckOut, own[1].EventType)
}

func TestFetchLogs_LastCompletedFetchWinsSnapshot(t *testing.T) {
	svc := &fakeService{logs: []entity.AttendanceLog{{UserID: "7", Timestamp: "2024-01-05T10:00:00Z"}}}
	uc := appattendance.NewUseCase(svc, &fakeIdentity{}, sessionWith(t, activeUser()), nil, logger.Nop())

	_, err := uc.FetchLogs(context.Background(), 0)
	require.NoError(t, err)

	svc.mu.Lock()
	svc.logs = append(svc.logs, entity.AttendanceLog{UserID: "8", Timestamp: "2024-01-06T09:00:00Z"})
	svc.mu.Unlock()

	_, err = uc.FetchLogs(context.Background(), 0)
	require.NoError(t, err)

	assert.Len(t, uc.Snapshot(), 2, "snapshot must reflect the last completed fetch")
}

func TestFiltered_DegradesToEmptyDirectory(t *testing.T) {
	svc := &fakeService{logs: []entity.AttendanceLog{
		{UserID: "7", Timestamp: "2024-01-05T10:00:00Z"},
	}}
	ident := &fakeIdentity{err: errors.New("identity unreachable")}
	uc := appattendance.NewUseCase(svc, ident, sessionWith(t, activeUser()), nil, logger.Nop())

	view, err := uc.Filtered(context.Background(), domattendance.FilterCriteria{}, 0)

	require.NoError(t, err, "a roster failure must not block the log view")
	assert.Len(t, view.Logs, 1)
	assert.Empty(t, view.Directory)
	assert.Equal(t, 1, view.Total)
}

func TestFiltered_AppliesCriteria(t *testing.T) {
	svc := &fakeService{logs: []entity.AttendanceLog{
		{UserID: float64(7), Timestamp: "2024-01-05T10:00:00Z"},
		{UserID: float64(8), Timestamp: "2024-01-06T09:00:00Z"},
	}}
	ident := &fakeIdentity{users: []entity.UserProfile{{ID: "7", Name: "Naila"}}}
	uc := appattendance.NewUseCase(svc, ident, sessionWith(t, activeUser()), nil, logger.Nop())

	view, err := uc.Filtered(context.Background(), domattendance.FilterCriteria{Date: "2024-01-05"}, 0)

	require.NoError(t, err)
	require.Len(t, view.Logs, 1)
	assert.Equal(t, "7", view.Logs[0].UserIDString())
	assert.Equal(t, 2, view.Total)
}
