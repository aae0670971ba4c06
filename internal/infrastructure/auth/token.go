package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

// ErrUnauthorized covers every token failure: missing, malformed, expired,
// wrong signature. Callers never learn which, by design of the HTTP surface.
var ErrUnauthorized = errors.New("unauthorized")

// Claims is the identity a verified token asserts.
type Claims struct {
	ParticipantID int64
	Role          domain.Role
}

// GenerateToken issues an HS256 bearer token for the participant. The login
// service owns issuance in production; this is shared so tests and tooling
// mint compatible tokens.
func GenerateToken(participantID int64, role domain.Role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(participantID, 10),
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a bearer token and returns the identity it
// asserts. Any failure maps to ErrUnauthorized.
func VerifyToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	sub, _ := mapClaims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrUnauthorized
	}
	roleStr, _ := mapClaims["role"].(string)
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return &Claims{ParticipantID: id, Role: role}, nil
}
