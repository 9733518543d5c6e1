package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether a bearer token carries an exp claim in the
// past. Tokens without an exp claim, or that do not parse as JWTs, are not
// treated as expired: the server stays authoritative for token validity, this
// check only lets obviously stale sessions fail fast without a network call.
func TokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
