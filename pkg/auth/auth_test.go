package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Configure("test-secret", time.Minute)

	token, err := GenerateToken("u-1", "alice", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "u-1" {
		t.Errorf("Expected user id u-1, got %s", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %s", claims.Username)
	}
	if !claims.IsAdmin() {
		t.Error("Expected admin claims")
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	Configure("test-secret", time.Minute)
	good, err := GenerateToken("u-1", "alice", RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	other, err := GenerateToken("u-2", "mallory", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	goodParts := strings.Split(good, ".")
	otherParts := strings.Split(other, ".")

	testCases := []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"Garbage", "not-a-token"},
		{"SwappedPayload", goodParts[0] + "." + otherParts[1] + "." + goodParts[2]},
		{"Truncated", goodParts[0] + "." + goodParts[1]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidateToken(tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	Configure("first-secret", time.Minute)
	token, err := GenerateToken("u-1", "alice", RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	Configure("second-secret", time.Minute)
	defer Configure("test-secret", time.Minute)

	if _, err := ValidateToken(token); err == nil {
		t.Error("Expected token signed with another secret to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hashed == "s3cret!" {
		t.Fatal("Expected hash to differ from plaintext")
	}
	if !CheckPassword(hashed, "s3cret!") {
		t.Error("Expected password to match its hash")
	}
	if CheckPassword(hashed, "wrong") {
		t.Error("Expected wrong password to be rejected")
	}
}
