package auth

import (
	"errors"
	"testing"
	"time"
)

// TestAccessTokenRoundTrip tests generation and validation of access tokens
func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	claims := UserClaims{
		UserID:  "user-123",
		Email:   "trader@example.com",
		IsAdmin: true,
	}

	token, err := manager.GenerateAccessToken(claims)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	parsed, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if parsed.UserID != claims.UserID {
		t.Errorf("Expected user ID %s, got %s", claims.UserID, parsed.UserID)
	}
	if parsed.Email != claims.Email {
		t.Errorf("Expected email %s, got %s", claims.Email, parsed.Email)
	}
	if !parsed.IsAdmin {
		t.Error("Expected admin flag to survive the round trip")
	}
}

// TestValidateAccessTokenWrongSecret rejects tokens signed with another key
func TestValidateAccessTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a", 15*time.Minute, 24*time.Hour)
	other := NewJWTManager("secret-b", 15*time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(UserClaims{UserID: "user-123"})
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("Expected validation to fail with a different secret")
	}
}

// TestValidateAccessTokenExpired maps expiry to ErrTokenExpired
func TestValidateAccessTokenExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(UserClaims{UserID: "user-123"})
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	_, err = manager.ValidateAccessToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

// TestGenerateRefreshTokenUnique verifies refresh tokens are random
func TestGenerateRefreshTokenUnique(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	a, err := manager.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}
	b, err := manager.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}

	if a == b {
		t.Error("Expected distinct refresh tokens")
	}
	if len(a) == 0 {
		t.Error("Expected non-empty refresh token")
	}
}
