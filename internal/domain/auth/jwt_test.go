package auth

import (
	"testing"
	"time"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken(
		"user-1", "tech@example.com",
		[]string{"technician"},
		[]string{"catalog:product:read", "doc:sale:create"},
		false,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token already expired")
	}

	uc, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.UserID != "user-1" || uc.Email != "tech@example.com" {
		t.Errorf("claims not preserved: %+v", uc)
	}
	if len(uc.Permissions) != 2 || uc.Permissions[1] != "doc:sale:create" {
		t.Errorf("permissions not preserved: %v", uc.Permissions)
	}
	if uc.IsAdmin {
		t.Error("unexpected admin flag")
	}
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken("user-1", "a@b.c", nil, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("expected validation failure for wrong secret")
	}
}
