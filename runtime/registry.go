package runtime

import (
	"sync"
	"webchat/contract"
	"webchat/domain/chat"
)

var _ contract.IRegistry = (*Registry)(nil)

type Set[T comparable] map[T]struct{}

// Registry holds the in-memory room membership of live connections.
// Nothing here is persisted: a restart or a disconnect forgets it.
type Registry struct {
	mu              sync.RWMutex
	sessions        map[string]contract.EventSink // connection -> sink
	roomMembers     map[chat.RoomID]Set[string]   // room -> connections
	connectionRooms map[string]Set[chat.RoomID]   // connection -> rooms
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:        make(map[string]contract.EventSink),
		roomMembers:     make(map[chat.RoomID]Set[string]),
		connectionRooms: make(map[string]Set[chat.RoomID]),
	}
}

// GetSinksForRoom resolves the members of a room into their sinks.
// A connection joined to several rooms owns a single sink.
// Returns nil if the room has no members.
func (r *Registry) GetSinksForRoom(roomID chat.RoomID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[roomID]
	if !ok {
		return nil
	}
	activeSinks := make([]contract.EventSink, 0, len(members))
	for connectionID := range members {
		if sink, exists := r.sessions[connectionID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Join adds a connection to a room, creating the room on the fly.
// Joining twice is a no-op.
func (r *Registry) Join(connectionID string, roomID chat.RoomID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[connectionID] = sink

	if _, ok := r.roomMembers[roomID]; !ok {
		r.roomMembers[roomID] = make(Set[string])
	}
	r.roomMembers[roomID][connectionID] = struct{}{}

	if _, ok := r.connectionRooms[connectionID]; !ok {
		r.connectionRooms[connectionID] = make(Set[chat.RoomID])
	}
	r.connectionRooms[connectionID][roomID] = struct{}{}
}

// Leave removes a connection from one room. The session itself is
// dropped once the connection belongs to no room.
func (r *Registry) Leave(connectionID string, roomID chat.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leave(connectionID, roomID)
}

// Disconnect removes a connection from every room it joined.
func (r *Registry) Disconnect(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roomID := range r.connectionRooms[connectionID] {
		r.leave(connectionID, roomID)
	}
	delete(r.sessions, connectionID)
}

func (r *Registry) leave(connectionID string, roomID chat.RoomID) {
	if members, ok := r.roomMembers[roomID]; ok {
		delete(members, connectionID)
		// No empty sets left behind
		if len(members) == 0 {
			delete(r.roomMembers, roomID)
		}
	}
	if rooms, ok := r.connectionRooms[connectionID]; ok {
		delete(rooms, roomID)
		if len(rooms) == 0 {
			delete(r.connectionRooms, connectionID)
			delete(r.sessions, connectionID)
		}
	}
}

func (r *Registry) Stats() contract.RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return contract.RegistryStats{
		Connections: len(r.sessions),
		Rooms:       len(r.roomMembers),
	}
}
