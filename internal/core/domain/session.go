package domain

import "time"

// SessionState describes a LinkedIn session owned by the auth service.
// Cookies and headers are opaque to everything but the LinkedIn client.
type SessionState struct {
	LoggedIn  bool              `json:"loggedIn"`
	Username  string            `json:"username,omitempty"`
	Cookies   map[string]string `json:"cookies,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	CreatedAt time.Time         `json:"createdAt,omitempty"`
}

// Expired reports whether the session is older than ttl.
func (s SessionState) Expired(ttl time.Duration) bool {
	if s.CreatedAt.IsZero() {
		return true
	}
	return time.Since(s.CreatedAt) > ttl
}
