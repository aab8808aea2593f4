package attendance

import (
	"encoding/json"
	"fmt"

	"github.com/queenify/attendance-portal/internal/domain"
	"github.com/queenify/attendance-portal/internal/domain/entity"
)

// logsMatchers unwrap the three shapes the attendance service serves logs in:
// a bare array, or an object wrapping the array under "data" or "logs". Each
// matcher is pure; the first match wins.
var logsMatchers = []func(raw []byte) ([]entity.AttendanceLog, bool){
	matchBareArray,
	matchWrapped("data"),
	matchWrapped("logs"),
}

// UnwrapLogs normalizes a logs response body to a bare slice. A valid JSON
// body matching none of the known shapes yields an empty slice, mirroring the
// portal's degrade-to-empty behavior; invalid JSON is an error.
func UnwrapLogs(raw []byte) ([]entity.AttendanceLog, error) {
	if !json.Valid(raw) {
		return nil, fmt.Errorf("unwrap logs: %w", domain.ErrUnexpectedShape)
	}
	for _, match := range logsMatchers {
		if logs, ok := match(raw); ok {
			return logs, nil
		}
	}
	return []entity.AttendanceLog{}, nil
}

func matchBareArray(raw []byte) ([]entity.AttendanceLog, bool) {
	var logs []entity.AttendanceLog
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, false
	}
	return logs, true
}

func matchWrapped(key string) func(raw []byte) ([]entity.AttendanceLog, bool) {
	return func(raw []byte) ([]entity.AttendanceLog, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, false
		}
		inner, ok := obj[key]
		if !ok {
			return nil, false
		}
		return matchBareArray(inner)
	}
}
