package domain

import (
	"errors"
	"testing"
)

func TestNewMessageValidation(t *testing.T) {
	cases := []struct {
		name      string
		sender    int64
		recipient int64
		content   string
		wantErr   error
	}{
		{"valid", 7, 3, "Bonjour", nil},
		{"missing sender", 0, 3, "Bonjour", ErrMissingParticipant},
		{"missing recipient", 7, 0, "Bonjour", ErrMissingParticipant},
		{"negative id", -1, 3, "Bonjour", ErrMissingParticipant},
		{"self addressed", 7, 7, "Bonjour", ErrSelfAddressed},
		{"empty content", 7, 3, "", ErrEmptyContent},
		{"whitespace only", 7, 3, "   \t\n", ErrEmptyContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := NewMessage(tc.sender, tc.recipient, tc.content)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("NewMessage error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr == nil && msg == nil {
				t.Fatal("expected a message, got nil")
			}
		})
	}
}

func TestNewMessageTrimsContent(t *testing.T) {
	msg, err := NewMessage(7, 3, "  Bonjour  ")
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if msg.Content != "Bonjour" {
		t.Errorf("content = %q, want %q", msg.Content, "Bonjour")
	}
	if msg.Read {
		t.Error("new message must start unread")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("admin"); err != nil || r != RoleAdmin {
		t.Errorf("ParseRole(admin) = %v, %v", r, err)
	}
	if r, err := ParseRole("user"); err != nil || r != RoleUser {
		t.Errorf("ParseRole(user) = %v, %v", r, err)
	}
	if _, err := ParseRole("superadmin"); err == nil {
		t.Error("ParseRole should reject unknown roles")
	}
}

func TestRoleOpposite(t *testing.T) {
	if RoleAdmin.Opposite() != RoleUser || RoleUser.Opposite() != RoleAdmin {
		t.Error("Opposite must swap user and admin")
	}
}
