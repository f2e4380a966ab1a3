package auth

import (
	"testing"
	"time"

	"github.com/qtts/assetdesk/internal/model"
)

var admin = model.User{ID: "u1", Name: "Admin", Email: "admin@qtts.com", Role: model.RoleAdmin}

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, admin, "s1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("expected user_id u1, got %q", claims.UserID)
	}
	if claims.Email != "admin@qtts.com" {
		t.Errorf("expected email admin@qtts.com, got %q", claims.Email)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("expected role ADMIN, got %q", claims.Role)
	}
	if claims.SessionID != "s1" {
		t.Errorf("expected session id s1, got %q", claims.SessionID)
	}
	if claims.ID == "" {
		t.Error("expected a JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", admin, "s1", time.Hour)

	if _, err := ValidateToken("secret2", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestNonPositiveTTLUsesDefault(t *testing.T) {
	token, _ := GenerateToken("secret", admin, "s1", 0)
	claims, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	diff := time.Until(claims.ExpiresAt.Time) - DefaultTokenExpiry
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from default: diff=%v", diff)
	}
}
