package shared

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims the backend puts in its bearer tokens.
type SessionClaims struct {
	Role   string `json:"rol,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"nombre,omitempty"`
	SedeID string `json:"sede_id,omitempty"`
	jwt.RegisteredClaims
}

// ParseSessionToken decodes the claims of a bearer token without verifying its signature.
//
// The backend stays the authority on validity; the claims only seed the local session (role, email, expiry).
func ParseSessionToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Expired reports whether the token carries an expiry at or before now.
func (c *SessionClaims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}
