// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"magang_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// otpDigits is the length of verification and reset codes.
	otpDigits = 6
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists when a
	// user with the same email is already stored.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns the user with the given email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns the user with the given ID, or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	// GenerateToken creates a signed token carrying the user's identity and role.
	GenerateToken(userID uint, email string, role entity.Role) (string, error)
}

// Mailer delivers one-time codes to users.
type Mailer interface {
	// SendVerificationCode mails an email-verification OTP.
	SendVerificationCode(to, name, code string) error

	// SendResetCode mails a password-reset code.
	SendResetCode(to, name, code string) error
}

// ResendThrottle rate-limits OTP resends per email address.
type ResendThrottle interface {
	// Allow reports whether the address may receive another code now.
	Allow(ctx context.Context, email string) (bool, error)
}

// authUsecase implements the identity business logic.
type authUsecase struct {
	users    UserRepository
	tokens   TokenGenerator
	mailer   Mailer
	throttle ResendThrottle
	otpTTL   time.Duration
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, tokens TokenGenerator, mailer Mailer, throttle ResendThrottle, otpTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		throttle: throttle,
		otpTTL:   otpTTL,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// generateCode produces a random numeric one-time code.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

// Register creates an unverified account and mails a verification OTP.
func (u *authUsecase) Register(ctx context.Context, fullName, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(u.otpTTL)

	user := &entity.User{
		FullName:            fullName,
		Email:               email,
		Password:            string(hashed),
		Role:                entity.RoleUser,
		IsActive:            true,
		VerifyCode:          &code,
		VerifyCodeExpiresAt: &expiry,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return err
	}

	// Mail delivery failure does not fail the registration; the user can
	// request a resend.
	if err := u.mailer.SendVerificationCode(user.Email, user.FullName, code); err != nil {
		slog.Warn("failed to send verification code", "email", user.Email, "error", err)
	}
	return nil
}

// Login authenticates a user and returns a signed token on success.
// A bcrypt comparison runs even when the user does not exist, so response
// timing does not reveal whether the email is registered.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the path for
	// unknown users.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}
	if !user.IsVerified {
		return "", nil, ErrAccountNotVerified
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if tokenErr != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, user, nil
}

// VerifyOTP confirms an email-verification code and marks the account verified.
func (u *authUsecase) VerifyOTP(ctx context.Context, email, code string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	if user.VerifyCode == nil || user.VerifyCodeExpiresAt == nil ||
		*user.VerifyCode != code || time.Now().After(*user.VerifyCodeExpiresAt) {
		return ErrInvalidOTP
	}

	user.IsVerified = true
	user.VerifyCode = nil
	user.VerifyCodeExpiresAt = nil
	return u.users.Update(ctx, user)
}

// ResendOTP issues a fresh verification code, subject to the resend cooldown.
func (u *authUsecase) ResendOTP(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	allowed, err := u.throttle.Allow(ctx, email)
	if err != nil {
		// A throttle backend failure never blocks the user.
		slog.Warn("otp resend throttle unavailable", "error", err)
	} else if !allowed {
		return ErrResendTooSoon
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(u.otpTTL)
	user.VerifyCode = &code
	user.VerifyCodeExpiresAt = &expiry
	if err := u.users.Update(ctx, user); err != nil {
		return err
	}

	if err := u.mailer.SendVerificationCode(user.Email, user.FullName, code); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// ForgotPassword issues a reset code for the given email. It returns nil when
// the email is unknown, so callers cannot probe which addresses are registered.
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(u.otpTTL)
	user.ResetCode = &code
	user.ResetCodeExpiresAt = &expiry
	if err := u.users.Update(ctx, user); err != nil {
		return err
	}

	if err := u.mailer.SendResetCode(user.Email, user.FullName, code); err != nil {
		slog.Warn("failed to send reset code", "email", user.Email, "error", err)
	}
	return nil
}

// ResetPassword sets a new password after validating the reset code.
func (u *authUsecase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	if user.ResetCode == nil || user.ResetCodeExpiresAt == nil ||
		*user.ResetCode != code || time.Now().After(*user.ResetCodeExpiresAt) {
		return ErrInvalidOTP
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	user.ResetCode = nil
	user.ResetCodeExpiresAt = nil
	return u.users.Update(ctx, user)
}

// Me returns the account for the given ID.
func (u *authUsecase) Me(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// UpdateProfile changes the account's display name.
func (u *authUsecase) UpdateProfile(ctx context.Context, id uint, fullName string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FullName = fullName
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
func (u *authUsecase) ChangePassword(ctx context.Context, id uint, current, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return u.users.Update(ctx, user)
}
