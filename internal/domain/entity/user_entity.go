package entity

import (
	"time"
)

// User is the aggregate root for the account domain
// Passwords are stored as bcrypt hashes in Password field;
// reset codes are stored as sha256 hex digests, never plaintext.
type User struct {
	ID         string
	Name       string
	Slug       string
	Email      string
	Phone      string
	ProfileImg string
	Password   string
	Role       Role
	Active     bool

	PasswordChangedAt     *time.Time
	PasswordResetCode     string
	PasswordResetExpires  *time.Time
	PasswordResetVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
