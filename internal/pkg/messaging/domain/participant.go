package domain

import "fmt"

// Role partitions participants into the two sides of the support chat.
// Every participant is exactly one of the two; same-role messaging is rejected.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string coming off the wire (join frames, tokens).
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Opposite returns the role on the other side of the conversation.
func (r Role) Opposite() Role {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

// Participant is an identity able to send and receive messages.
// Sourced from the accounts table; the messaging core never mutates it.
type Participant struct {
	ID     int64   `json:"id" db:"id"`
	Name   string  `json:"nom" db:"nom"`
	Email  string  `json:"email" db:"email"`
	Role   Role    `json:"role" db:"role"`
	Avatar *string `json:"avatar" db:"avatar"`
}
