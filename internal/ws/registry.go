package ws

import "sync"

// Registry maps room keys to the set of sessions currently in each room.
// It is the only shared mutable state in the core; all access goes through
// its methods, under one mutex. Membership is tracked by map presence
// rather than a sentinel value on the session, so Leave is safe for a
// session that never joined.
//
// Empty room entries are left in place after the last member leaves; a
// later join reuses them.
type Registry struct {
	mu      sync.Mutex
	rooms   map[string]map[*Session]struct{}
	current map[*Session]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]map[*Session]struct{}),
		current: make(map[*Session]string),
	}
}

// Join moves the session into the room with the given key, removing it
// from any room it was in before. Joining the current room is a no-op.
func (r *Registry) Join(s *Session, roomKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.current[s]; ok {
		if prev == roomKey {
			return
		}
		delete(r.rooms[prev], s)
	}

	members, ok := r.rooms[roomKey]
	if !ok {
		members = make(map[*Session]struct{})
		r.rooms[roomKey] = members
	}
	members[s] = struct{}{}
	r.current[s] = roomKey
}

// Leave removes the session from its current room, if any. Calling Leave
// on a session that never joined a room does nothing.
func (r *Registry) Leave(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomKey, ok := r.current[s]
	if !ok {
		return
	}
	delete(r.rooms[roomKey], s)
	delete(r.current, s)
}

// Broadcast delivers a frame to every session currently in the room,
// best-effort, and returns the number of sessions that accepted it.
// Sends are non-blocking, so holding the lock across the fan-out cannot
// stall on a slow session.
func (r *Registry) Broadcast(roomKey string, frame []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivered := 0
	for s := range r.rooms[roomKey] {
		if s.Send(frame) {
			delivered++
		}
	}
	return delivered
}

// Room reports the session's current room key, if it has one.
func (r *Registry) Room(s *Session) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.current[s]
	return key, ok
}

// Members reports how many sessions are currently in the room.
func (r *Registry) Members(roomKey string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[roomKey])
}
