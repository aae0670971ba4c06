package realtime

import (
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

// MessageDeliverer fans a persisted message out to live connections: every
// connection of the recipient, plus the sender's connections other than the
// one that originated the send (that tab renders from its own response).
type MessageDeliverer struct {
	registry *Registry
}

func NewMessageDeliverer(registry *Registry) *MessageDeliverer {
	return &MessageDeliverer{registry: registry}
}

// DeliverMessage pushes msg as a new_message event and returns how many of
// the recipient's connections received it. Zero is not an error; the message
// waits in the store for the recipient's next history or unread poll.
func (d *MessageDeliverer) DeliverMessage(msg domain.Message, originConnectionID string) (int, error) {
	payload, err := MarshalEvent(EventNewMessage, msg)
	if err != nil {
		return 0, err
	}
	delivered := d.registry.Push(msg.RecipientID, payload, "")
	if originConnectionID != "" {
		// The sending tab appends optimistically from its own response, so it
		// is excluded here. When the origin is unknown (HTTP send without an
		// X-Connection-Id header) the echo is skipped entirely rather than
		// risking a duplicate render in the sending tab.
		d.registry.Push(msg.SenderID, payload, originConnectionID)
	}
	return delivered, nil
}
