package realtime

import (
	"sort"
	"sync"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/domain"
)

// Registry maps participants to their live connections. It is the substrate
// for presence and targeted delivery: a participant may hold several
// connections at once (multi-tab), and lookups always return the full set.
// The registry holds no durable state; it starts empty on every process start
// and clients re-join on reconnect.
type Registry struct {
	mu          sync.RWMutex
	connections map[string]*Connection            // connectionID -> connection
	byPart      map[int64]map[string]*Connection  // participantID -> connectionID -> connection
	byRole      map[domain.Role]map[int64]int     // role -> participantID -> live connection count
}

// NewRegistry constructs an initialized Registry.
func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[string]*Connection),
		byPart:      make(map[int64]map[string]*Connection),
		byRole: map[domain.Role]map[int64]int{
			domain.RoleUser:  make(map[int64]int),
			domain.RoleAdmin: make(map[int64]int),
		},
	}
}

// Register adds a connection and reports whether this was the participant's
// first live connection (a 0 -> 1 presence transition).
func (r *Registry) Register(conn *Connection) (first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.connections[conn.ID] = conn

	set := r.byPart[conn.ParticipantID]
	if set == nil {
		set = make(map[string]*Connection)
		r.byPart[conn.ParticipantID] = set
	}
	set[conn.ID] = conn

	r.byRole[conn.Role][conn.ParticipantID]++
	return r.byRole[conn.Role][conn.ParticipantID] == 1
}

// Unregister removes a connection if it is still tracked and reports whether
// it was the participant's last one (a 1 -> 0 presence transition).
// Idempotent: unregistering an unknown connection is a no-op.
func (r *Registry) Unregister(conn *Connection) (last bool, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, tracked := r.connections[conn.ID]; !tracked {
		return false, false
	}
	delete(r.connections, conn.ID)

	if set := r.byPart[conn.ParticipantID]; set != nil {
		delete(set, conn.ID)
		if len(set) == 0 {
			delete(r.byPart, conn.ParticipantID)
		}
	}

	counts := r.byRole[conn.Role]
	counts[conn.ParticipantID]--
	if counts[conn.ParticipantID] <= 0 {
		delete(counts, conn.ParticipantID)
		return true, true
	}
	return false, true
}

// ConnectionsFor returns every live connection of the participant.
func (r *Registry) ConnectionsFor(participantID int64) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.byPart[participantID]
	if len(set) == 0 {
		return nil
	}
	conns := make([]*Connection, 0, len(set))
	for _, c := range set {
		conns = append(conns, c)
	}
	return conns
}

// AllOfRole returns the sorted ids of participants of the role with at least
// one live connection.
func (r *Registry) AllOfRole(role domain.Role) []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := r.byRole[role]
	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Push delivers payload to every live connection of the participant except the
// one named by excludeConnectionID. A connection that vanished or whose buffer
// rejects the write is skipped silently; the caller gets the delivered count.
func (r *Registry) Push(participantID int64, payload []byte, excludeConnectionID string) int {
	delivered := 0
	for _, conn := range r.ConnectionsFor(participantID) {
		if conn.ID == excludeConnectionID {
			continue
		}
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// BroadcastToRole delivers payload to every live connection of every
// participant of the role.
func (r *Registry) BroadcastToRole(role domain.Role, payload []byte) int {
	r.mu.RLock()
	conns := make([]*Connection, 0, len(r.connections))
	for _, conn := range r.connections {
		if conn.Role == role {
			conns = append(conns, conn)
		}
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range conns {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Close terminates all tracked connections and clears registry state.
func (r *Registry) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.connections))
	for _, conn := range r.connections {
		conns = append(conns, conn)
	}
	r.connections = make(map[string]*Connection)
	r.byPart = make(map[int64]map[string]*Connection)
	r.byRole = map[domain.Role]map[int64]int{
		domain.RoleUser:  make(map[int64]int),
		domain.RoleAdmin: make(map[int64]int),
	}
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close(1001, "registry shutdown")
	}
}
