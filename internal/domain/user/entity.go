package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a registered account. The username is derived from the
// names at registration time; email and username are unique across all users.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsVerified   bool
	OTP          *OTP
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OTP is the one-time email verification payload. It exists only between
// registration and a successful verification.
type OTP struct {
	Code      string
	ExpiresAt time.Time
}

// IsExpired reports whether the code can no longer be redeemed.
func (o *OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// PasswordResetToken proves the holder received a password-reset email.
// A token is valid for one hour from creation and is destroyed on first use.
type PasswordResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	CreatedAt time.Time
}

// ResetTokenTTL is how long a reset token stays redeemable.
const ResetTokenTTL = time.Hour

// IsExpired reports whether the token has outlived its TTL.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > ResetTokenTTL
}
