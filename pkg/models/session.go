package models

import "time"

// Session represents a server-side login session
type Session struct {
	Token     string    `json:"token" db:"token"`
	UserID    string    `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Expired reports whether the session is past its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
