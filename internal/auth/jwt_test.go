package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret-12345"

func TestGenerateAndParseJWT(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT(testSecret, userID, "kol@example.com", ScopeAccess, time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := ParseJWT(testSecret, token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "kol@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Scope != ScopeAccess {
		t.Errorf("Scope = %q, want %q", claims.Scope, ScopeAccess)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(testSecret, uuid.New(), "a@b.c", ScopeAccess, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT("other-secret", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(testSecret, uuid.New(), "a@b.c", ScopeAccess, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	// expiration <= 0 falls back to 24h, so the token is still valid
	if _, err := ParseJWT(testSecret, token); err != nil {
		t.Fatalf("expected default expiration, got: %v", err)
	}

	token, err = GenerateJWT(testSecret, uuid.New(), "a@b.c", ScopeAccess, time.Nanosecond)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(1100 * time.Millisecond)
	_, err = ParseJWT(testSecret, token)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("expected 'expired' in error, got: %s", err.Error())
	}
}

func TestParseScopedJWT(t *testing.T) {
	token, err := GenerateJWT(testSecret, uuid.New(), "a@b.c", ScopeSignup, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseScopedJWT(testSecret, token, ScopeSignup); err != nil {
		t.Fatalf("expected signup scope to pass, got: %v", err)
	}
	if _, err := ParseScopedJWT(testSecret, token, ScopeAccess); !errors.Is(err, ErrWrongScope) {
		t.Fatalf("expected ErrWrongScope, got: %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("expected wrong password to be rejected")
	}
}
