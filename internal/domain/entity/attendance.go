package entity

import "encoding/json"

// Attendance event types.
const (
	EventCheckIn  = "CHECK_IN"
	EventCheckOut = "CHECK_OUT"
)

// Attendance categories (work location / absence reason).
const (
	CategoryWFO   = "WFO"
	CategoryWFH   = "WFH"
	CategorySakit = "SAKIT"
	CategoryIzin  = "IZIN"
)

// AttendanceLog is one record from the attendance service. Records are owned by
// the service and read-only here; UserID keeps whatever JSON scalar the service
// sent (string or number), so comparisons go through UserIDString.
type AttendanceLog struct {
	ID        json.RawMessage `json:"id,omitempty"`
	UserID    any             `json:"user_id"`
	Timestamp string          `json:"timestamp"`
	EventType string          `json:"event_type"`
	Category  string          `json:"category"`
	Notes     string          `json:"notes,omitempty"`
}

// UserIDString is the string form of the record's user id, tolerating the
// service mixing numeric and string ids across records.
func (l AttendanceLog) UserIDString() string {
	return scalarString(l.UserID)
}

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t string) bool {
	return t == EventCheckIn || t == EventCheckOut
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryWFO, CategoryWFH, CategorySakit, CategoryIzin:
		return true
	}
	return false
}
