package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, domain.RoleUser, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.ParticipantID != 7 || claims.Role != domain.RoleUser {
		t.Errorf("claims = %+v, want id=7 role=user", claims)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(3, domain.RoleAdmin, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := VerifyToken(token, "other-secret"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("wrong secret: err = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateToken(3, domain.RoleAdmin, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := VerifyToken(token, testSecret); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expired token: err = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken("not-a-token", testSecret); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("garbage token: err = %v, want ErrUnauthorized", err)
	}
}
