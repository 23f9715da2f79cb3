package model

import "time"

// RefreshToken is the persisted proof that a refresh token was issued. The
// signed token string is stored verbatim; a refresh token is honoured only
// while a matching row exists and ExpiresAt is in the future, so deleting the
// row revokes the token even though its signature stays valid.
type RefreshToken struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
