// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"magang_backend/internal/feature/auth/domain/entity"
	"magang_backend/internal/feature/auth/transport/http/dto"
	"magang_backend/internal/feature/auth/usecase"
	jwtmw "magang_backend/internal/platform/jwt"
	"magang_backend/internal/shared/response"
)

// AuthUsecase defines the identity operations the handler depends on.
// Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, fullName, email, password string) error
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Me(ctx context.Context, id uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uint, fullName string) (*entity.User, error)
	ChangePassword(ctx context.Context, id uint, current, newPassword string) error
}

// AuthHandler handles HTTP requests for identity operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// resetResponseMessage is returned for every forgot-password request, whether
// or not the email is registered, so the endpoint cannot be used to probe
// registration status.
const resetResponseMessage = "if the email is registered, a reset code has been sent"

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	if err := h.auth.Register(c.Request.Context(), req.FullName, req.Email, req.Password); err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, response.Error("email is already registered"))
			return
		}
		slog.Error("register failed", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("registration failed"))
		return
	}
	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, response.OK("registered; check your email for the verification code", nil))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP(), "error", err)
		switch {
		case errors.Is(err, usecase.ErrAccountNotVerified):
			c.JSON(http.StatusUnauthorized, response.Error("email is not verified"))
		case errors.Is(err, usecase.ErrAccountDisabled):
			c.JSON(http.StatusUnauthorized, response.Error("account is disabled"))
		default:
			c.JSON(http.StatusUnauthorized, response.Error("invalid email or password"))
		}
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, response.OK("login successful", dto.LoginRes{Token: token, User: dto.FromUser(user)}))
}

// VerifyOTP handles POST /auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	if err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, response.Error("invalid or expired code"))
		case errors.Is(err, usecase.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, response.Error("account is already verified"))
		default:
			slog.Error("otp verification failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, response.Error("verification failed"))
		}
		return
	}
	c.JSON(http.StatusOK, response.OK("email verified", nil))
}

// ResendOTP handles POST /auth/resend-otp.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	if err := h.auth.ResendOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, response.Error("account not found"))
		case errors.Is(err, usecase.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, response.Error("account is already verified"))
		case errors.Is(err, usecase.ErrResendTooSoon):
			c.JSON(http.StatusBadRequest, response.Error("please wait before requesting another code"))
		default:
			slog.Error("otp resend failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, response.Error("failed to send code"))
		}
		return
	}
	c.JSON(http.StatusOK, response.OK("verification code sent", nil))
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		slog.Error("forgot-password failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to process request"))
		return
	}
	c.JSON(http.StatusOK, response.OK(resetResponseMessage, nil))
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrInvalidOTP) {
			c.JSON(http.StatusBadRequest, response.Error("invalid or expired code"))
			return
		}
		slog.Error("password reset failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to reset password"))
		return
	}
	c.JSON(http.StatusOK, response.OK("password has been reset", nil))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, response.Error("account not found"))
			return
		}
		slog.Error("me lookup failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to load profile"))
		return
	}
	c.JSON(http.StatusOK, response.OK("profile loaded", dto.FromUser(user)))
}

// UpdateProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)
	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, req.FullName)
	if err != nil {
		slog.Error("profile update failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to update profile"))
		return
	}
	c.JSON(http.StatusOK, response.OK("profile updated", dto.FromUser(user)))
}

// ChangePassword handles PUT /auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrWrongPassword) {
			c.JSON(http.StatusBadRequest, response.Error("current password is incorrect"))
			return
		}
		slog.Error("password change failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to change password"))
		return
	}
	c.JSON(http.StatusOK, response.OK("password changed", nil))
}
