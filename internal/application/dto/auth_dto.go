package dto

import "github.com/queenify/attendance-portal/internal/domain/entity"

// LoginRequest credentials posted by the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse the portal's canonical user shape (id already normalized).
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// LoginResponse tagged login outcome. On success Redirect names the view the
// client should navigate to (admins land on the admin view).
type LoginResponse struct {
	Success  bool          `json:"success"`
	User     *UserResponse `json:"user,omitempty"`
	Redirect string        `json:"redirect,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// SessionResponse the current session state. Loading true means restore has
// not completed and gate decisions are still pending.
type SessionResponse struct {
	Loading       bool          `json:"loading"`
	Authenticated bool          `json:"authenticated"`
	Admin         bool          `json:"admin"`
	User          *UserResponse `json:"user,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// ToUserResponse maps a profile to its response shape.
func ToUserResponse(u *entity.UserProfile) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status}
}
