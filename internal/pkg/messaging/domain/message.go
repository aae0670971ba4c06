package domain

import (
	"errors"
	"strings"
	"time"
)

// Message is an immutable log entry between one user and one admin.
// JSON field names match the storefront wire format (French column names).
// Lu only ever flips false -> true, via an explicit mark-read by the recipient.
type Message struct {
	ID          int64     `json:"id" db:"id"`
	SenderID    int64     `json:"expediteur_id" db:"expediteur_id"`
	RecipientID int64     `json:"destinataire_id" db:"destinataire_id"`
	Content     string    `json:"contenu" db:"contenu"`
	Read        bool      `json:"lu" db:"lu"`
	CreatedAt   time.Time `json:"date_envoi" db:"date_envoi"`
}

var (
	ErrMissingParticipant = errors.New("sender and recipient ids are required")
	ErrEmptyContent       = errors.New("message content must not be empty")
	ErrSelfAddressed      = errors.New("sender and recipient must differ")
)

// NewMessage validates and normalizes an outgoing message before persistence.
// The store assigns ID and CreatedAt; both are zero on the returned value.
func NewMessage(senderID, recipientID int64, content string) (*Message, error) {
	if senderID <= 0 || recipientID <= 0 {
		return nil, ErrMissingParticipant
	}
	if senderID == recipientID {
		return nil, ErrSelfAddressed
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return &Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}, nil
}
