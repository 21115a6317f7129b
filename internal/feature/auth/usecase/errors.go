// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register with an
	// email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountNotVerified is returned when logging in before the email
	// OTP has been confirmed.
	ErrAccountNotVerified = errors.New("account email is not verified")

	// ErrAccountDisabled is returned when the account has been deactivated.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInvalidOTP is returned when a verification or reset code does not
	// match or has expired.
	ErrInvalidOTP = errors.New("invalid or expired code")

	// ErrAlreadyVerified is returned when requesting an OTP for an account
	// that is already verified.
	ErrAlreadyVerified = errors.New("account is already verified")

	// ErrResendTooSoon is returned when an OTP resend is requested inside
	// the cooldown window.
	ErrResendTooSoon = errors.New("please wait before requesting another code")

	// ErrWrongPassword is returned when the current password does not match
	// during a password change.
	ErrWrongPassword = errors.New("current password is incorrect")
)
