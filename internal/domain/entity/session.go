package entity

import "time"

// Session emparejamiento de un snapshot del usuario con su bearer token.
type Session struct {
	TokenID         string    `json:"token_id"` // jti del JWT
	Token           string    `json:"token"`
	User            User      `json:"user"`
	IsAuthenticated bool      `json:"is_authenticated"`
	IssuedAt        time.Time `json:"issued_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Expired indica si la sesión ya venció respecto de now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
