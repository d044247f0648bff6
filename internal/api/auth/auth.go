// Package auth turns bearer tokens into lifecycle actors. Tokens are HS256
// JWTs carrying the user id in "sub" and role memberships in "roles".
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt"

	"github.com/wryteup/jobboard-be/internal/api/domain"
)

var (
	ErrNoToken      = errors.New("no bearer token provided")
	ErrInvalidToken = errors.New("invalid bearer token")
)

// TokenFromHeader extracts the bearer token from an Authorization header
// value.
func TokenFromHeader(authorization string) (string, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return "", ErrNoToken
	}

	token := strings.TrimPrefix(authorization, "Bearer ")
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// ParseActor validates the token signature and maps its claims to an Actor.
func ParseActor(tokenString, secret string) (domain.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return domain.Actor{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	actor := domain.Actor{ID: int64(sub)}

	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				actor.Roles = append(actor.Roles, role)
			}
		}
	}

	return actor, nil
}

// NewToken issues a signed token for a user. Used by tests and auxiliary
// tooling; the platform's account service is the normal issuer.
func NewToken(userID int64, roles []string, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   float64(userID),
		"roles": roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
