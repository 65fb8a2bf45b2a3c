package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestDecodeSession_ReadsSubjectAndExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "42", "exp": exp.Unix()})

	s := DecodeSession(token)

	if s.Subject != "42" {
		t.Errorf("subject = %q, want 42", s.Subject)
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Errorf("expires at = %v, want %v", s.ExpiresAt, exp)
	}
	if s.Expired {
		t.Errorf("token should not be expired")
	}
}

func TestDecodeSession_Expired(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Minute).Unix()})

	if s := DecodeSession(token); !s.Expired {
		t.Fatalf("expected expired session")
	}
}

func TestDecodeSession_OpaqueToken(t *testing.T) {
	s := DecodeSession("abc")
	if s == nil {
		t.Fatalf("expected empty session, got nil")
	}
	if s.Subject != "" || !s.ExpiresAt.IsZero() || s.Expired {
		t.Fatalf("expected zero session, got %+v", s)
	}
}
