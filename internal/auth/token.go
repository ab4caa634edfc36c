package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long issued access tokens remain usable.
const TokenValidity = 24 * time.Hour

// ErrInvalidToken is returned when a token fails validation for any reason:
// bad signature, wrong algorithm, expiry, or a malformed payload.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries only the registered JWT claims; the account email travels
// in Subject.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token with the given subject.
func GenerateToken(subject, secret string, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})

	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the token subject.
func ParseToken(tokenString, secret string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
