package domain

import "time"

// RefreshToken is a server-side stored refresh credential. A token is
// single-use: redeeming it sets Revoked and issues a replacement.
type RefreshToken struct {
	ID        int64
	Token     string
	UserID    int64
	Revoked   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
