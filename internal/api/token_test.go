package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Subject:   "42",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{"valid for an hour", signedToken(t, time.Now().Add(time.Hour)), false},
		{"expired an hour ago", signedToken(t, time.Now().Add(-time.Hour)), true},
		{"opaque non-JWT token", "tok-550e8400", false},
		{"empty token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, TokenExpired(tt.token))
		})
	}
}

func TestTokenExpired_NoExpClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "42",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	// Without an exp claim the server stays authoritative.
	assert.False(t, TokenExpired(token))
}
