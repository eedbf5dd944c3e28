package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("u1", "admin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "admin" || claims.TokenType != TokenTypeAccess {
		t.Errorf("unexpected claims %+v", claims)
	}

	refresh, err := m.GenerateRefreshToken("u1", "admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	claims, err = m.ValidateToken(refresh)
	if err != nil {
		t.Fatalf("ValidateToken(refresh) error = %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("TokenType = %q, expected refresh", claims.TokenType)
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateToken("u1", "admin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	m.now = time.Now
	if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ValidateToken() error = %v, expected ErrInvalidToken", err)
	}
}

func TestWrongSecret(t *testing.T) {
	token, _ := NewJWTManager("one", time.Hour, time.Hour).GenerateToken("u1", "admin")
	if _, err := NewJWTManager("two", time.Hour, time.Hour).ValidateToken(token); err == nil {
		t.Fatal("Expected validation to fail with a different secret")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPasswordHash("hunter2", hash) {
		t.Error("Expected password to match its hash")
	}
	if CheckPasswordHash("hunter3", hash) {
		t.Error("Expected wrong password to be rejected")
	}
}
