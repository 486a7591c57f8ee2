package tokenstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRevokeAndCheck(t *testing.T) {
	jti := uuid.NewString()
	if IsRevoked(jti) {
		t.Fatalf("expected fresh jti to not be revoked")
	}
	Revoke(jti, time.Now().Add(time.Hour))
	if !IsRevoked(jti) {
		t.Fatalf("expected jti to be revoked")
	}
}

func TestEmptyJTIIsNoop(t *testing.T) {
	Revoke("", time.Now().Add(time.Hour))
	if IsRevoked("") {
		t.Fatalf("expected empty jti to never read as revoked")
	}
}

func TestRevocationExpiresWithToken(t *testing.T) {
	jti := uuid.NewString()
	// already-expired token still gets the fallback TTL, not instant expiry
	Revoke(jti, time.Now().Add(-time.Minute))
	if !IsRevoked(jti) {
		t.Fatalf("expected fallback TTL to keep expired-token jti revoked")
	}
}
