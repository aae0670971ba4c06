package repository

import (
	"context"
	"errors"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

// ErrParticipantNotFound signals a directory lookup miss.
var ErrParticipantNotFound = errors.New("participant not found")

// MessageRepository is the gateway to the durable message store and the
// participant directory. The store is the single source of truth; the core
// never caches messages beyond the currently open conversation.
type MessageRepository interface {
	// Save persists a new message. The store assigns id and timestamp and the
	// returned record carries both.
	Save(ctx context.Context, m domain.Message) (*domain.Message, error)

	// Conversation returns every message exchanged between the two
	// participants, ordered by creation time ascending.
	Conversation(ctx context.Context, a, b int64) ([]domain.Message, error)

	// UnreadFor returns the unread messages addressed to the recipient,
	// ordered by creation time ascending.
	UnreadFor(ctx context.Context, recipientID int64) ([]domain.Message, error)

	// MarkRead flips a message to read, scoped to its recipient. Marking an
	// already-read message is a no-op, not an error.
	MarkRead(ctx context.Context, messageID, recipientID int64) error

	// GetParticipant resolves one identity from the directory.
	GetParticipant(ctx context.Context, id int64) (*domain.Participant, error)

	// ListAdmins returns every admin account (the user-side contact list).
	ListAdmins(ctx context.Context) ([]domain.Participant, error)

	// SearchUsers returns user accounts whose name or email matches search;
	// an empty search returns all of them (the admin-side contact list).
	SearchUsers(ctx context.Context, search string) ([]domain.Participant, error)
}
