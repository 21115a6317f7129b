package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"magang_backend/internal/feature/auth/domain/entity"
	"magang_backend/internal/shared/response"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// UserResolver loads the live account for a token's subject. Tokens for
// deleted or disabled accounts are rejected even before their expiry.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a gin middleware that validates bearer tokens and
// resolves them to a live account. Each failure mode gets a distinct message:
// missing token, expired token, invalid token, unknown or disabled account.
func AuthRequired(secret string, users UserResolver) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("missing bearer token"))
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is accepted.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("token expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid token"))
			return
		}
		sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid token"))
			return
		}

		// Resolve the live account on every request so revoked or disabled
		// accounts lose access immediately.
		user, err := users.FindByID(c.Request.Context(), uint(sub))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("account not found"))
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("account is disabled"))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

// AdminRequired returns a gin middleware that rejects non-admin callers.
// It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextUserRole)
		if !ok || role.(entity.Role) != entity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("admin access required"))
			return
		}
		c.Next()
	}
}

// CallerRole returns the role stored by AuthRequired.
func CallerRole(c *gin.Context) entity.Role {
	role, ok := c.Get(ContextUserRole)
	if !ok {
		return ""
	}
	return role.(entity.Role)
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return CallerRole(c) == entity.RoleAdmin
}
