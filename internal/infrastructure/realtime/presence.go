package realtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

// PresenceTracker broadcasts online-set changes to the opposite role. Presence
// is role-partitioned: users only learn which admins are online and vice
// versa, which also keeps a participant out of its own online payloads.
//
// Only 0<->nonzero transitions of a participant's connection count trigger a
// broadcast; a second tab of an already-online participant stays silent.
type PresenceTracker struct {
	registry *Registry
	logger   *zap.Logger

	// serializes snapshot+broadcast per announced role so concurrent
	// transitions cannot emit stale sets out of order
	userMu  sync.Mutex
	adminMu sync.Mutex
}

func NewPresenceTracker(registry *Registry, logger *zap.Logger) *PresenceTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PresenceTracker{registry: registry, logger: logger}
}

// Joined reacts to a registered connection. The new connection always gets a
// snapshot of the opposite role's online set, so its UI never starts blind;
// the wider broadcast fires only on a 0 -> 1 transition.
func (t *PresenceTracker) Joined(conn *Connection, first bool) {
	t.sendSnapshot(conn)
	if first {
		t.broadcast(conn.Role)
	}
}

// Left reacts to an unregistered connection; broadcasts only when the
// participant's last connection went away.
func (t *PresenceTracker) Left(conn *Connection, last bool) {
	if last {
		t.broadcast(conn.Role)
	}
}

// sendSnapshot pushes the online set of the opposite role to a single
// connection.
func (t *PresenceTracker) sendSnapshot(conn *Connection) {
	other := conn.Role.Opposite()
	payload, err := MarshalEvent(presenceEventFor(other), t.registry.AllOfRole(other))
	if err != nil {
		t.logger.Error("presence snapshot encode failed", zap.Error(err))
		return
	}
	_ = conn.Send(payload)
}

// broadcast pushes roleOnline's current online set to every connection of the
// opposite role.
func (t *PresenceTracker) broadcast(roleOnline domain.Role) {
	mu := t.lockFor(roleOnline)
	mu.Lock()
	defer mu.Unlock()

	ids := t.registry.AllOfRole(roleOnline)
	payload, err := MarshalEvent(presenceEventFor(roleOnline), ids)
	if err != nil {
		t.logger.Error("presence broadcast encode failed", zap.Error(err))
		return
	}
	delivered := t.registry.BroadcastToRole(roleOnline.Opposite(), payload)
	t.logger.Debug("presence broadcast",
		zap.String("role", string(roleOnline)),
		zap.Int("online", len(ids)),
		zap.Int("delivered", delivered))
}

func (t *PresenceTracker) lockFor(role domain.Role) *sync.Mutex {
	if role == domain.RoleAdmin {
		return &t.adminMu
	}
	return &t.userMu
}
