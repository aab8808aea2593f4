package dto

import "github.com/queenify/attendance-portal/internal/domain/entity"

// SubmitRequest one check-in/check-out submission from the attendance form.
type SubmitRequest struct {
	EventType string `json:"event_type"` // CHECK_IN / CHECK_OUT
	Category  string `json:"category"`   // WFO / WFH / SAKIT / IZIN
	Notes     string `json:"notes"`
}

// SubmitResponse successful submission outcome.
type SubmitResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Record  entity.AttendanceLog `json:"record"`
}

// LogsResponse a user's own attendance history.
type LogsResponse struct {
	Data  []entity.AttendanceLog `json:"data"`
	Total int                    `json:"total"`
}

// AdminLog one admin-view row: the raw record plus the resolved display name.
type AdminLog struct {
	entity.AttendanceLog
	DisplayName string `json:"display_name"`
}

// AdminLogsResponse the filtered admin log view. Total counts the fetched set
// before filtering; Filtered the surviving rows.
type AdminLogsResponse struct {
	Data     []AdminLog `json:"data"`
	Total    int        `json:"total"`
	Filtered int        `json:"filtered"`
}

// UsersResponse the admin roster view.
type UsersResponse struct {
	Data  []UserResponse `json:"data"`
	Total int            `json:"total"`
}
