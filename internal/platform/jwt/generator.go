// Package jwtmw provides access-token generation and the gin middleware that
// establishes caller identity and role.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"magang_backend/internal/feature/auth/domain/entity"
)

// Generator defines the interface for access-token generation.
type Generator interface {
	// GenerateToken creates a signed token for the given user.
	GenerateToken(userID uint, email string, role entity.Role) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret   []byte
	lifetime time.Duration
}

// NewGenerator creates a new token generator with the provided secret and lifetime.
func NewGenerator(secret string, lifetime time.Duration) Generator {
	return &generator{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// GenerateToken creates a signed HS256 token carrying identity and role claims.
func (g *generator) GenerateToken(userID uint, email string, role entity.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   now.Add(g.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
