// Package auth verifies Supabase-issued access tokens and enforces
// per-user rate limits for the admin API.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	apperrors "kusina-backend/pkg/errors"
)

// Role values carried in Supabase app_metadata for dashboard users.
const (
	RoleAdmin     = "admin"
	RoleDietitian = "dietitian"
	RoleViewer    = "viewer"
)

// Claims is the subset of a Supabase access token the dashboard cares
// about. Role comes from app_metadata and defaults to viewer.
type Claims struct {
	Email       string         `json:"email"`
	AppMetadata map[string]any `json:"app_metadata"`
	jwt.RegisteredClaims
}

// Role returns the dashboard role embedded in app_metadata.
func (c *Claims) Role() string {
	if role, ok := c.AppMetadata["dashboard_role"].(string); ok && role != "" {
		return role
	}
	return RoleViewer
}

// Verifier validates Supabase JWTs signed with the project secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given Supabase JWT secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates tokenString, returning its claims.
// Supabase signs access tokens with HS256; any other method is
// rejected.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, apperrors.NewUnauthorizedError("token has no subject")
	}
	return claims, nil
}

// CanWrite reports whether role may mutate catalog data.
func CanWrite(role string) bool {
	return role == RoleAdmin || role == RoleDietitian
}

// CanReview reports whether role may review cook verifications.
func CanReview(role string) bool {
	return role == RoleAdmin
}
