package session

import (
	"context"

	"github.com/queenify/attendance-portal/internal/domain/entity"
)

// IdentityService is the outbound port to the remote identity collaborator. The
// adapter normalizes the service's loose response shapes before anything
// crosses this boundary.
type IdentityService interface {
	// Login exchanges credentials for an opaque token and a normalized profile.
	// The token may be empty when the service omits it.
	Login(ctx context.Context, email, password string) (token string, user entity.UserProfile, err error)
	// FetchAllUsers returns the user roster (admin only on the remote side).
	FetchAllUsers(ctx context.Context, token string) ([]entity.UserProfile, error)
}

// Persisted session keys, mirroring the browser localStorage keys the portal
// replaces.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store is the durable local key-value storage holding the persisted session.
// It survives restarts; it is read at startup and written only by login/logout.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
