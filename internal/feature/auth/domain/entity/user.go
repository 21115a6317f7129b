// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role is the closed set of account roles.
type Role string

const (
	// RoleUser is a citizen account that submits applications.
	RoleUser Role = "user"
	// RoleAdmin is a staff account that manages positions and reviews
	// applications.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// FullName is the display name shown on dashboards and emails.
	FullName string `gorm:"size:255;not null"`

	// Email is the login identity. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	Password string `gorm:"size:255;not null"`

	// Role decides which endpoints the account may reach.
	Role Role `gorm:"size:16;not null;default:user"`

	// IsActive gates login and token resolution. Disabled accounts are
	// rejected on every request.
	IsActive bool `gorm:"not null;default:true"`

	// IsVerified is set once the email OTP has been confirmed.
	IsVerified bool `gorm:"not null;default:false"`

	// VerifyCode and VerifyCodeExpiresAt hold the pending email
	// verification OTP. Both are cleared after a successful confirmation.
	VerifyCode          *string `gorm:"size:8"`
	VerifyCodeExpiresAt *time.Time

	// ResetCode and ResetCodeExpiresAt hold the pending password reset
	// code. Both are cleared after a successful reset.
	ResetCode          *string `gorm:"size:8"`
	ResetCodeExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
