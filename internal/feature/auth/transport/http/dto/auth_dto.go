// Package dto defines data transfer objects for the auth feature's HTTP
// transport layer. JSON uses snake_case; the mapping to the canonical entity
// fields happens here and nowhere else.
package dto

import (
	"time"

	"magang_backend/internal/feature/auth/domain/entity"
)

// RegisterReq represents the request body for the /auth/register endpoint.
type RegisterReq struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq represents the request body for the /auth/login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPReq represents the request body for the /auth/verify-otp endpoint.
type VerifyOTPReq struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// EmailReq carries a bare email address (resend OTP, forgot password).
type EmailReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordReq represents the request body for /auth/reset-password.
type ResetPasswordReq struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileReq represents the request body for /auth/profile.
type UpdateProfileReq struct {
	FullName string `json:"full_name" binding:"required"`
}

// ChangePasswordReq represents the request body for /auth/change-password.
type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserRes is the public projection of a user account.
type UserRes struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginRes is the response body for a successful login.
type LoginRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}

// FromUser maps a user entity to its public projection.
func FromUser(u *entity.User) UserRes {
	return UserRes{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
