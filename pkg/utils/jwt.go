package utils

import (
	"errors"
	"fmt"
	"time"

	appErrors "ecommerce-api/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the subject (username) of an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken issues a signed HS256 access token whose subject is the
// username, expiring ttl from now.
func GenerateToken(username, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies signature and expiry and returns the claims.
// Expired tokens yield ErrTokenExpired; every other failure (bad signature,
// malformed token, unexpected algorithm, empty subject) yields ErrTokenInvalid.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.ErrTokenExpired
		}
		return nil, appErrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, appErrors.ErrTokenInvalid
	}

	return claims, nil
}
