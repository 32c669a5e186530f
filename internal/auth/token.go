package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenLifetime = 7 * 24 * time.Hour

// CreateAccessToken issues a signed HS256 token for the given user.
func CreateAccessToken(secret []byte, userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(AccessTokenLifetime).Unix(),
	})
	return token.SignedString(secret)
}

// ParseToken validates a token and returns the user ID from its subject
// claim.
func ParseToken(secret []byte, tokenString string) (int64, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return 0, err
	}
	if !parsed.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	if sub, ok := claims["sub"].(string); ok {
		userID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid subject claim: %v", err)
		}
		return userID, nil
	}
	if sub, ok := claims["sub"].(float64); ok {
		return int64(sub), nil
	}

	return 0, fmt.Errorf("missing subject claim")
}
