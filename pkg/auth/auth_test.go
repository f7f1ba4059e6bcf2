package auth

import (
	"strings"
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Error("garbage hash accepted")
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-123", RoleCustomer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("userID = %q", claims.UserID)
	}
	if claims.Role != RoleCustomer {
		t.Errorf("role = %q", claims.Role)
	}
}

func TestParseJWTRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-123", RoleCustomer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ParseJWT(tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := GenerateJWT("user-123", RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}

func TestParseJWTEmptyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := ParseJWT(""); err == nil {
		t.Fatal("empty token accepted")
	}
}

func TestParseJWTExpiry(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 24 * time.Hour},
		{"not-a-number", 24 * time.Hour},
		{"1", time.Hour},
		{"48", 48 * time.Hour},
	}
	for _, tt := range tests {
		if got := parseJWTExpiry(tt.in); got != tt.want {
			t.Errorf("parseJWTExpiry(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
