package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// TestHashAndVerifyPassword tests the bcrypt round trip
func TestHashAndVerifyPassword(t *testing.T) {
	// MinCost keeps the test fast
	manager := NewPasswordManager(bcrypt.MinCost, 8)

	hash, err := manager.HashPassword("correct-horse1")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == "correct-horse1" {
		t.Fatal("Hash must not equal the plaintext")
	}

	if !manager.VerifyPassword("correct-horse1", hash) {
		t.Error("Expected correct password to verify")
	}
	if manager.VerifyPassword("wrong-password1", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}

// TestValidatePasswordStrength tests the strength rules
func TestValidatePasswordStrength(t *testing.T) {
	manager := NewPasswordManager(bcrypt.MinCost, 8)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "trading123", false},
		{"too short", "abc1", true},
		{"no digit", "passwordonly", true},
		{"no letter", "1234567890", true},
		{"mixed valid", "S3ssionTrader", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.ValidatePasswordStrength(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("Password %q: expected error=%v, got %v", tt.password, tt.wantErr, err)
			}
		})
	}
}
