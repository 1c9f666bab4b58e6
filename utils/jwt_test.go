package utils

import (
	"testing"
	"time"

	"mediconnect/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("doctor-1", RoleDoctor, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateToken(token)
	if err != nil || !parsed.Valid {
		t.Fatalf("validate: %v", err)
	}

	subject, role, err := ExtractClaimsFromToken(token)
	if err != nil {
		t.Fatalf("extract claims: %v", err)
	}
	if subject != "doctor-1" || role != RoleDoctor {
		t.Errorf("got subject %q role %q", subject, role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("patient-1", RolePatient, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := ExtractClaimsFromToken(token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("patient-1", RolePatient, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	config.AppConfig.JWTSecret = "other-secret"
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("token-a")
	if a != HashToken("token-a") {
		t.Error("hash is not deterministic")
	}
	if a == HashToken("token-b") {
		t.Error("different tokens hash equal")
	}
	if len(a) != 64 {
		t.Errorf("hash length %d, want 64 hex chars", len(a))
	}
}
