package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashAndVerifyPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"short", "hunter2"},
		{"typical", "correct horse battery staple"},
		{"over bcrypt limit", strings.Repeat("a", 100)},
		{"unicode", "pässwörd-日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if err != nil {
				t.Fatalf("HashPassword: %v", err)
			}
			if !VerifyPassword(tt.password, hash) {
				t.Error("expected password to verify against its own hash")
			}
			if VerifyPassword(tt.password+"x", hash) {
				t.Error("expected wrong password to fail verification")
			}
		})
	}
}

func TestLongPasswordsBeyondTruncationDiffer(t *testing.T) {
	// Without the pre-hash these two would collide at bcrypt's 72 byte
	// truncation point.
	a := strings.Repeat("a", 80)
	b := strings.Repeat("a", 80) + "different"

	hash, err := HashPassword(a)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if VerifyPassword(b, hash) {
		t.Error("expected distinct long passwords not to verify")
	}
}

func TestCreateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := CreateAccessToken(secret, 42)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	userID, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("ParseToken user ID = %d, want 42", userID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := CreateAccessToken([]byte("secret-a"), 1)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if _, err := ParseToken([]byte("secret-b"), token); err == nil {
		t.Error("expected token signed with different secret to be rejected")
	}
}

func TestParseTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := ParseToken(secret, tokenString); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	secret := []byte("test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "7"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := ParseToken(secret, tokenString); err == nil {
		t.Error("expected token with none algorithm to be rejected")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken([]byte("test-secret"), "not.a.token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}
