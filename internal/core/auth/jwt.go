// Package auth provides bearer-token validation for the API.
// Token issuance is out of scope; tokens come from the identity provider.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	appctx "stockmaster/internal/core/context"
)

// JWTConfig holds JWT validation configuration.
type JWTConfig struct {
	Secret string
	Issuer string
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret: secret,
		Issuer: "stockmaster",
	}
}

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string   `json:"uid"`
	Email   string   `json:"email"`
	Roles   []string `json:"roles"`
	IsAdmin bool     `json:"adm,omitempty"`
}

// JWTService validates bearer tokens.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// ValidateToken validates JWT and returns user context.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &appctx.UserContext{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Roles:   claims.Roles,
		IsAdmin: claims.IsAdmin,
	}, nil
}
