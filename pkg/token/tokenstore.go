package tokenstore

import (
	"time"

	"YakYak/pkg/cache"
)

// Revocation list for JWT ids, backed by the shared TTL cache so revoked
// jtis disappear once the token they belong to has expired anyway.

func key(jti string) string {
	return cache.KeyFromStrings("revoked-jti", jti)
}

// Revoke marks a jti as revoked until the token's own expiry. A zero or
// past expiry falls back to 24h, the login token lifetime.
func Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cache.Default().Set(key(jti), struct{}{}, ttl)
}

func IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}
	_, ok := cache.Default().Get(key(jti))
	return ok
}
