package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating the signed,
// time-limited bearer credentials handed out at registration and login.
// There is no refresh flow; an expired token requires a fresh login.
type TokenService interface {
	// GenerateToken creates a new access token for the given user.
	GenerateToken(userID uuid.UUID) (string, error)

	// ValidateToken checks the validity of a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
