package dto

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BannerError is an error meant to be shown as a transient banner; the client
// clears it after ClearAfterMS.
type BannerError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// ClearAfterMS fixed auto-clear interval for the banner.
	ClearAfterMS int `json:"clear_after_ms"`
}
