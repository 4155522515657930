package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-1", "asha@example.com", RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "asha@example.com" || claims.Role != RoleManager {
		t.Errorf("claims = %q/%q/%q", claims.Subject, claims.Email, claims.Role)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("token has no expiry")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("default ttl = %v, want about 24h", ttl)
	}
}

func TestTokenTTLFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL", "30m")

	token, err := GenerateToken("user-1", "a@example.com", RoleStaff)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 29*time.Minute || ttl > 31*time.Minute {
		t.Errorf("ttl = %v, want about 30m", ttl)
	}

	// Garbage falls back to the default instead of failing issuance.
	t.Setenv("JWT_TTL", "soon")
	if _, err := GenerateToken("user-1", "a@example.com", RoleStaff); err != nil {
		t.Errorf("garbage JWT_TTL: %v", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-1", "asha@example.com", RoleStaff)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateToken(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: err = %v, want ErrInvalidToken", err)
	}

	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("old-secret token: err = %v, want ErrInvalidToken", err)
	}
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := GenerateToken("", "a@example.com", RoleStaff); err == nil {
		t.Error("empty userID accepted")
	}
}
