package models

import "time"

// Session is the per-browser session store state. It is the only state shared across pages.
type Session struct {
	ID        string    `db:"id" json:"id"`
	User      *User     `json:"user,omitempty"`
	Token     string    `json:"token,omitempty"`
	Loading   bool      `json:"loading"`
	Error     string    `json:"error,omitempty"`
	Flash     string    `json:"flash,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}

// Authenticated reports whether the session carries a user.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil && s.Error == ""
}

// Role returns the role of the session user or an empty string.
func (s *Session) Role() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Role
}
