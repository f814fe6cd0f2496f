package auth

import (
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword("secret", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	token, err := GenerateToken(42, "alice")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "moodsync" {
		t.Errorf("expected issuer 'moodsync', got %q", claims.Issuer)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
