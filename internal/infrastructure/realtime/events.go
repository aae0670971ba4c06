package realtime

import (
	"encoding/json"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

// Wire event names. The two presence events are role-scoped because the
// storefront listens for a different name on each side of the chat.
const (
	EventJoin         = "join"
	EventNewMessage   = "new_message"
	EventOnlineUsers  = "online_users"        // user presence, pushed to admins
	EventOnlineAdmins = "updateOnlineAdmins"  // admin presence, pushed to users
	EventError        = "error"
)

// Frame is the envelope of every message on the realtime channel.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MarshalEvent encodes data into a framed event payload.
func MarshalEvent(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: raw})
}

// presenceEventFor maps a role to the event name announcing that role's
// online set.
func presenceEventFor(roleOnline domain.Role) string {
	if roleOnline == domain.RoleAdmin {
		return EventOnlineAdmins
	}
	return EventOnlineUsers
}
