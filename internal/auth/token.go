// ABOUTME: Session token generation and verification for the admin panel
// ABOUTME: Uses HS256 signed JWTs with configurable secret

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrSecretTooShort = errors.New("token secret too short")
)

// MinSecretLength is the minimum signing secret size in bytes.
const MinSecretLength = 32

// sessionSubject is the sub claim carried by every session token. There is a
// single admin identity; the token exists to be unguessable, not to name a user.
const sessionSubject = "admin"

// Tokens issues and verifies session tokens. The token string is opaque to the
// store; callers persist it next to its expiry timestamp.
type Tokens struct {
	secret []byte
}

// NewTokens creates a token issuer with the given signing secret.
func NewTokens(secret []byte) (*Tokens, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrSecretTooShort, MinSecretLength, len(secret))
	}
	return &Tokens{secret: secret}, nil
}

// Generate creates a new session token expiring after ttl.
func (t *Tokens) Generate(now time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": sessionSubject,
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify validates the token signature and expiry.
func (t *Tokens) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if sub, _ := claims["sub"].(string); sub != sessionSubject {
		return ErrInvalidToken
	}

	return nil
}
