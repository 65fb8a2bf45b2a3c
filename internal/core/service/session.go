package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobtracker/tracker-web/internal/core/domain"
)

// DecodeSession reads the subject and expiry of a JWT bearer token without
// verifying its signature. The token is opaque to the client, so anything
// that does not parse as a JWT yields an empty Session.
func DecodeSession(token string) *domain.Session {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return &domain.Session{}
	}

	session := &domain.Session{}
	if sub, err := claims.GetSubject(); err == nil {
		session.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
		session.Expired = time.Now().After(exp.Time)
	}
	return session
}
