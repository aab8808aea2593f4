// Package identity is the HTTP adapter for the remote identity service
// (authentication and user roster). The service's response shapes are loose;
// see shape.go for the normalization.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/queenify/attendance-portal/internal/application/session"
	"github.com/queenify/attendance-portal/internal/domain"
	"github.com/queenify/attendance-portal/internal/domain/entity"
)

// Compile-time check that Client implements the session port.
var _ session.IdentityService = (*Client)(nil)

// Client calls the identity collaborator over plain net/http; no SDK involved.
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

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts credentials and normalizes the loose response: the token and
// user are extracted via the ordered shape-matchers, and the user id is
// canonicalized. Business rejections come back as *domain.CollaboratorError.
func (c *Client) Login(ctx context.Context, email, password string) (string, entity.UserProfile, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", entity.UserProfile{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", entity.UserProfile{}, err
	}
	c.setHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", entity.UserProfile{}, fmt.Errorf("identity login: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", entity.UserProfile{}, fmt.Errorf("identity login: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", entity.UserProfile{}, collaboratorError(resp.StatusCode, body)
	}

	obj, err := decodeObject(body)
	if err != nil {
		return "", entity.UserProfile{}, fmt.Errorf("identity login: %w", domain.ErrUnexpectedShape)
	}
	return ExtractToken(obj), ExtractUser(obj), nil
}

// FetchAllUsers returns the roster. Matching the portal's tolerance, anything
// that is not a JSON array of users comes back as an empty roster.
func (c *Client) FetchAllUsers(ctx context.Context, token string) ([]entity.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity users: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("identity users: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, collaboratorError(resp.StatusCode, body)
	}

	var raw []map[string]any
	if err := unmarshalNumbers(body, &raw); err != nil {
		return []entity.UserProfile{}, nil
	}
	users := make([]entity.UserProfile, 0, len(raw))
	for _, m := range raw {
		users = append(users, entity.ProfileFromMap(m))
	}
	return users, nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// collaboratorError converts a non-2xx payload into a CollaboratorError with a
// best-effort human-readable message (possibly empty).
func collaboratorError(status int, body []byte) error {
	msg := ""
	if obj, err := decodeObject(body); err == nil {
		msg = ExtractMessage(obj)
	}
	return &domain.CollaboratorError{Status: status, Message: msg}
}

// decodeObject decodes a JSON object keeping numbers as json.Number so numeric
// ids round-trip exactly.
func decodeObject(body []byte) (map[string]any, error) {
	var obj map[string]any
	if err := unmarshalNumbers(body, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func unmarshalNumbers(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
