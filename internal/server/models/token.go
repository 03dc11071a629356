package models

import "time"

// Token is the server-side record of an issued bearer token. ID is the
// JWT "jti" claim; TokenHash is the hex SHA-256 of the full bearer string.
type Token struct {
	ID        string
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
