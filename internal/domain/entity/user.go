package entity

import (
	"encoding/json"
	"strconv"
	"strings"
)

// User statuses as reported by the identity service.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// RoleAdmin is the privileged role; comparison is case-insensitive.
const RoleAdmin = "admin"

// UserProfile is the identity service's view of a user. The service is loose
// about field names, so profiles are always built through ProfileFromMap before
// they reach the rest of the portal: afterwards exactly one canonical ID exists.
type UserProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// IsActive reports whether the account may submit attendance.
func (u UserProfile) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin reports whether the role grants admin privilege. Total: an absent or
// empty role is simply non-admin.
func (u UserProfile) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

// idKeys are the alternate identifier fields seen in identity responses, in
// priority order. "id" wins when present.
var idKeys = []string{"id", "_id", "user_id", "userId"}

// ProfileFromMap builds a UserProfile from a decoded JSON object, normalizing
// the identifier from its alternate keys. Non-string scalar ids (numeric) are
// converted to their string form.
func ProfileFromMap(m map[string]any) UserProfile {
	u := UserProfile{
		Name:   stringField(m, "name"),
		Email:  stringField(m, "email"),
		Role:   stringField(m, "role"),
		Status: stringField(m, "status"),
	}
	for _, k := range idKeys {
		if v, ok := m[k]; ok {
			if s := scalarString(v); s != "" {
				u.ID = s
				break
			}
		}
	}
	return u
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		return scalarString(v)
	}
	return ""
}

// scalarString renders a JSON scalar as a string. json.Number keeps numeric ids
// exact ("7" instead of "7.000000").
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		// Ids arrive as integers; render without exponent or trailing zeros.
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
