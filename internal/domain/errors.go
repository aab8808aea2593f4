package domain

import "errors"

// Domain errors (no external dependencies). User-facing messages are mapped at
// the HTTP boundary; these sentinels classify the failure.
var (
	// ErrUnauthenticated no session user is present.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials the identity service rejected the login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountInactive the session user has status != active; refused locally
	// before any network call.
	ErrAccountInactive = errors.New("account inactive")
	// ErrMissingUserID the session user carries no usable identifier.
	ErrMissingUserID = errors.New("user id missing from session")
	// ErrSubmitInFlight a check-in/check-out call is already outstanding.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrInvalidInput the request failed local validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnexpectedShape a collaborator response did not match any known shape.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// CollaboratorError is a business error reported by a remote collaborator,
// carrying the human-readable message extracted from its error payload.
type CollaboratorError struct {
	Status  int
	Message string
}

func (e *CollaboratorError) Error() string {
	return e.Message
}
