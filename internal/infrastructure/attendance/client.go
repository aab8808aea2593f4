// Package attendance is the HTTP adapter for the remote attendance service
// (log submission and retrieval).
package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	appattendance "github.com/queenify/attendance-portal/internal/application/attendance"
	"github.com/queenify/attendance-portal/internal/domain"
	"github.com/queenify/attendance-portal/internal/domain/entity"
	"github.com/queenify/attendance-portal/internal/infrastructure/identity"
)

// Compile-time check that Client implements the application port.
var _ appattendance.Service = (*Client)(nil)

// Client calls the attendance collaborator over plain net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds the adapter. baseURL has no trailing slash.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// submitRequest is the wire payload for POST /api/logs. Notes is null (not "")
// when the form field was left empty.
type submitRequest struct {
	UserID    string  `json:"user_id"`
	EventType string  `json:"event_type"`
	Category  string  `json:"category"`
	Notes     *string `json:"notes"`
}

// Submit posts one check-in/check-out record.
func (c *Client) Submit(ctx context.Context, token string, in appattendance.SubmitInput) (entity.AttendanceLog, error) {
	body := submitRequest{UserID: in.UserID, EventType: in.EventType, Category: in.Category}
	if in.Notes != "" {
		body.Notes = &in.Notes
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return entity.AttendanceLog{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/logs", bytes.NewReader(payload))
	if err != nil {
		return entity.AttendanceLog{}, err
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.AttendanceLog{}, fmt.Errorf("attendance submit: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.AttendanceLog{}, fmt.Errorf("attendance submit: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entity.AttendanceLog{}, submitError(resp.StatusCode, raw)
	}

	var rec entity.AttendanceLog
	if err := json.Unmarshal(raw, &rec); err != nil {
		return entity.AttendanceLog{}, fmt.Errorf("attendance submit: %w", domain.ErrUnexpectedShape)
	}
	return rec, nil
}

// FetchLogs retrieves up to limit records. The response arrives as a bare
// array, or wrapped under "data" or "logs"; UnwrapLogs normalizes all three.
func (c *Client) FetchLogs(ctx context.Context, token string, limit int) ([]entity.AttendanceLog, error) {
	url := c.baseURL + "/api/logs?limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("attendance logs: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("attendance logs: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, submitError(resp.StatusCode, raw)
	}

	return UnwrapLogs(raw)
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// submitError extracts the attendance service's message ("detail" first, then
// "message") into a CollaboratorError.
func submitError(status int, body []byte) error {
	msg := ""
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		if s, ok := obj["detail"].(string); ok && s != "" {
			msg = s
		} else {
			msg = identity.ExtractMessage(obj)
		}
	}
	return &domain.CollaboratorError{Status: status, Message: msg}
}
