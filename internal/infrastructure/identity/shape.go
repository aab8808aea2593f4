package identity

import (
	"github.com/queenify/attendance-portal/internal/domain/entity"
)

// The identity service is loose about where it puts things. Each matcher below
// is pure and inspects one known location; matchers run in a fixed priority
// order and the first hit wins, which keeps the normalization testable away
// from any network code.

// tokenMatchers: token | access_token | data.token.
var tokenMatchers = []func(map[string]any) (string, bool){
	func(m map[string]any) (string, bool) { return stringAt(m, "token") },
	func(m map[string]any) (string, bool) { return stringAt(m, "access_token") },
	func(m map[string]any) (string, bool) {
		if d, ok := m["data"].(map[string]any); ok {
			return stringAt(d, "token")
		}
		return "", false
	},
}

// userMatchers: user | data.user | data | response root.
var userMatchers = []func(map[string]any) (map[string]any, bool){
	func(m map[string]any) (map[string]any, bool) { return objectAt(m, "user") },
	func(m map[string]any) (map[string]any, bool) {
		if d, ok := m["data"].(map[string]any); ok {
			return objectAt(d, "user")
		}
		return nil, false
	},
	func(m map[string]any) (map[string]any, bool) { return objectAt(m, "data") },
	func(m map[string]any) (map[string]any, bool) { return m, m != nil },
}

// messageKeys: where collaborators hide the human-readable error message.
var messageKeys = []string{"message", "detail", "error"}

// ExtractToken pulls the opaque bearer token out of a login response body.
// Empty when no known location holds a non-empty string.
func ExtractToken(body map[string]any) string {
	for _, match := range tokenMatchers {
		if tok, ok := match(body); ok {
			return tok
		}
	}
	return ""
}

// ExtractUser pulls the user object out of a login response body (falling back
// to the response root) and normalizes its identifier.
func ExtractUser(body map[string]any) entity.UserProfile {
	for _, match := range userMatchers {
		if obj, ok := match(body); ok {
			return entity.ProfileFromMap(obj)
		}
	}
	return entity.UserProfile{}
}

// ExtractMessage pulls a human-readable message out of an error payload.
// Empty when the payload lacks one; the caller supplies the generic fallback.
func ExtractMessage(body map[string]any) string {
	for _, k := range messageKeys {
		if s, ok := stringAt(body, k); ok {
			return s
		}
	}
	return ""
}

func stringAt(m map[string]any, key string) (string, bool) {
	if s, ok := m[key].(string); ok && s != "" {
		return s, true
	}
	return "", false
}

func objectAt(m map[string]any, key string) (map[string]any, bool) {
	if o, ok := m[key].(map[string]any); ok {
		return o, true
	}
	return nil, false
}
