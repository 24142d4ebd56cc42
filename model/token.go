// file: model/token.go

package model

import "time"

// RefreshToken holds one issued refresh token as stored in the database.
// Only a salted hash of the token string is persisted; the plaintext stays
// with the client. A record is usable for a refresh exchange only while
// Revoked is false and ExpiresAt is in the future.
type RefreshToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	TokenHash string    `json:"-"` // The hash is not exposed in JSON responses.
	Revoked   bool      `json:"revoked"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair is the ephemeral result of a successful register, login or
// refresh call. It is returned to the caller and never persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
