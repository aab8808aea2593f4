// Package session owns authentication state for the portal: who is logged in,
// with what privilege, persisted across restarts. It is the single source of
// truth consulted by every gate; instances are constructed explicitly and
// injected, never reached through a package-level singleton.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/queenify/attendance-portal/internal/domain"
	"github.com/queenify/attendance-portal/internal/domain/entity"
	"github.com/queenify/attendance-portal/pkg/logger"
)

// MsgLoginFailed is the generic failure shown when the identity service's
// error payload carries no usable message.
const MsgLoginFailed = "Login gagal. Periksa email dan password Anda."

// State is a snapshot of the session for gate decisions and rendering.
// User is present iff authenticated; Loading true means restore has not
// finished and every access-control decision must stay pending.
type State struct {
	User    *entity.UserProfile
	Loading bool
	Err     string
}

// Result is the tagged outcome of a login attempt.
type Result struct {
	Success bool
	User    *entity.UserProfile
	Error   string
}

// Manager owns the session. The spec's model is a single-threaded UI loop; an
// HTTP server is not, so the in-memory state is guarded by a RWMutex. The
// durable store still has exactly one logical writer per key (Login/Logout).
type Manager struct {
	identity IdentityService
	store    Store
	log      *logger.Logger

	mu      sync.RWMutex
	user    *entity.UserProfile
	loading bool
	lastErr string
}

// NewManager builds a manager in the loading state. Restore must run before
// the first gate decision.
func NewManager(identity IdentityService, store Store, log *logger.Logger) *Manager {
	return &Manager{
		identity: identity,
		store:    store,
		log:      log,
		loading:  true,
	}
}

// Restore loads a previously persisted session from the durable store. A
// corrupted user payload is treated as no session: both keys are cleared and
// the portal proceeds unauthenticated. Idempotent; always leaves loading false.
func (m *Manager) Restore(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, okToken, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		m.log.Error().Err(err).Msg("session store read failed, starting unauthenticated")
		return
	}
	raw, okUser, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		m.log.Error().Err(err).Msg("session store read failed, starting unauthenticated")
		return
	}
	if !okToken || !okUser {
		return
	}

	var user entity.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Fail safe toward logged-out, never toward a half-valid session.
		m.log.Warn().Err(err).Msg("persisted user is corrupted, clearing session keys")
		if derr := m.store.Delete(ctx, KeyToken, KeyUser); derr != nil {
			m.log.Error().Err(derr).Msg("clearing corrupted session keys")
		}
		return
	}

	m.warnIfExpired(token)

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	m.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("session restored")
}

// Login sends credentials to the identity collaborator and, on success,
// persists the token and the normalized profile (one write each) and sets the
// in-memory user. Failures surface as a tagged Result with a human-readable
// message; nothing is persisted and no retry is performed.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	m.mu.Lock()
	m.lastErr = ""
	m.mu.Unlock()

	token, user, err := m.identity.Login(ctx, email, password)
	if err != nil {
		msg := MsgLoginFailed
		var collab *domain.CollaboratorError
		if errors.As(err, &collab) && collab.Message != "" {
			msg = collab.Message
		}
		m.log.Warn().Err(err).Str("email", email).Msg("login failed")
		m.mu.Lock()
		m.lastErr = msg
		m.mu.Unlock()
		return Result{Success: false, Error: msg}
	}

	// The identity service occasionally omits the token; the profile alone
	// still constitutes a session, matching the stored-user contract.
	if token != "" {
		if err := m.store.Set(ctx, KeyToken, token); err != nil {
			m.log.Error().Err(err).Msg("persisting session token")
		}
	}
	raw, err := json.Marshal(user)
	if err == nil {
		if err := m.store.Set(ctx, KeyUser, string(raw)); err != nil {
			m.log.Error().Err(err).Msg("persisting session user")
		}
	}

	m.mu.Lock()
	m.user = &user
	m.lastErr = ""
	m.mu.Unlock()

	m.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login ok")
	return Result{Success: true, User: &user}
}

// Logout clears the persisted keys and the in-memory session. No network call;
// idempotent beyond guaranteeing a cleared state.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Delete(ctx, KeyToken, KeyUser); err != nil {
		m.log.Error().Err(err).Msg("clearing persisted session")
	}
	m.mu.Lock()
	m.user = nil
	m.lastErr = ""
	m.mu.Unlock()
}

// State returns a snapshot for gates and views.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{User: m.user, Loading: m.loading, Err: m.lastErr}
}

// IsAuthenticated reports whether a user is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsAdmin reports whether the current user holds the admin role
// (case-insensitive). Total: absent user or role is simply false.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.IsAdmin()
}

// User returns the current profile, or nil when unauthenticated.
func (m *Manager) User() *entity.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Token reads the persisted bearer token for collaborator calls. Empty when
// absent; the token stays opaque to the portal.
func (m *Manager) Token(ctx context.Context) string {
	token, ok, err := m.store.Get(ctx, KeyToken)
	if err != nil || !ok {
		return ""
	}
	return token
}

// warnIfExpired does a best-effort, unverified decode of the stored bearer
// token and logs when its exp claim is already in the past. Never gates any
// decision: the token is opaque and the remote services remain authoritative.
func (m *Manager) warnIfExpired(token string) {
	if token == "" {
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		m.log.Warn().Time("expired_at", exp.Time).Msg("restored session token looks expired; collaborator calls may be rejected")
	}
}
