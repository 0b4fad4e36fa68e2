package dto

import "time"

// SessionResponse is returned after a successful verification. The token also
// travels in the session cookie; the body copy serves non-browser clients.
type SessionResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PrincipalResponse describes a created principal. PII fields stay absent;
// only the opaque identifier and the role are returned.
type PrincipalResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// MessageResponse is a generic acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}
