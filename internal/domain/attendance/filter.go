// Package attendance holds the pure log-filter engine: reducing a fetched log
// collection to the subset matching the current criteria, plus display-name
// resolution. It is stateless; the displayed set is always a function of
// (logs, directory, criteria).
package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/queenify/attendance-portal/internal/domain/entity"
)

// FilterCriteria is the transient filter state for the admin log view. An empty
// field is inactive and filters nothing.
type FilterCriteria struct {
	// Date matches the log timestamp's UTC calendar date, format "2006-01-02".
	Date string
	// UserID matches as a substring of the record's user id in string form.
	UserID string
	// Name matches as a case-insensitive substring of the resolved display name.
	Name string
}

// IsZero reports whether no criterion is active.
func (c FilterCriteria) IsZero() bool {
	return c.Date == "" && c.UserID == "" && c.Name == ""
}

// ResolveName looks up the display name for userID in the directory, comparing
// ids in string form so numeric and string ids match each other. Unknown ids
// fall back to "User #<id>". Total: never fails.
func ResolveName(userID string, directory []entity.UserProfile) string {
	for _, u := range directory {
		if u.ID == userID && u.Name != "" {
			return u.Name
		}
	}
	return fmt.Sprintf("User #%s", userID)
}

// Apply returns the logs that satisfy every active criterion, in input order.
// Each criterion is an independent predicate; they are applied as a conjunction
// (date, then user-id substring, then resolved-name substring). The input slice
// is never mutated and repeated calls with the same arguments yield the same
// result.
func Apply(logs []entity.AttendanceLog, criteria FilterCriteria, directory []entity.UserProfile) []entity.AttendanceLog {
	out := make([]entity.AttendanceLog, 0, len(logs))
	nameNeedle := strings.ToLower(criteria.Name)
	for _, l := range logs {
		if criteria.Date != "" && logDate(l.Timestamp) != criteria.Date {
			continue
		}
		if criteria.UserID != "" && !strings.Contains(l.UserIDString(), criteria.UserID) {
			continue
		}
		if nameNeedle != "" {
			name := strings.ToLower(ResolveName(l.UserIDString(), directory))
			if !strings.Contains(name, nameNeedle) {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

// logDate reduces an ISO timestamp to its UTC calendar date ("2006-01-02").
// Unparseable timestamps yield "" and therefore never match a date criterion.
func logDate(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
