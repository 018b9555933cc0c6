package domain

import "errors"

// Session is the authenticated identity bound to a request. It is passed
// explicitly into every access check.
type Session struct {
	ID        string `json:"session_id"`
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	// Public marks a password-less viewer session.
	Public bool `json:"public,omitempty"`
}

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrPublicViewDisabled = errors.New("public view is disabled")
)

