package runtime

import (
	"context"
	"testing"
	"webchat/contract"
	"webchat/domain/chat"
	"webchat/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Sink struct {
	id string
}

func (s Sink) Consume(_ context.Context, _ event.DomainEvent) error {
	return nil
}

func TestRegistry_Join_One_Room_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connectionID := uuid.NewString()
	roomID := chat.RoomID("010524100000")
	sink := Sink{id: connectionID}

	// Given no connection and no room
	req.Equal(contract.RegistryStats{}, registry.Stats())
	req.Nil(registry.GetSinksForRoom(roomID))

	// When a connection joins a room
	registry.Join(connectionID, roomID, sink)

	// Then
	req.Equal(contract.RegistryStats{Connections: 1, Rooms: 1}, registry.Stats())
	req.Len(registry.GetSinksForRoom(roomID), 1)
	req.Contains(registry.GetSinksForRoom(roomID), sink)
}

func TestRegistry_Join_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	roomID := chat.RoomID("010524100000")
	sink := Sink{id: "a"}

	registry.Join("a", roomID, sink)
	registry.Join("a", roomID, sink)

	req.Len(registry.GetSinksForRoom(roomID), 1)
	req.Equal(contract.RegistryStats{Connections: 1, Rooms: 1}, registry.Stats())
}

func TestRegistry_Join_One_Room_Multiple_Connections(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	roomID := chat.RoomID("010524100000")
	sink1 := Sink{id: "1"}
	sink2 := Sink{id: "2"}

	registry.Join("1", roomID, sink1)
	registry.Join("2", roomID, sink2)

	req.Len(registry.GetSinksForRoom(roomID), 2)
	req.Contains(registry.GetSinksForRoom(roomID), sink1)
	req.Contains(registry.GetSinksForRoom(roomID), sink2)
}

func TestRegistry_Leave_Keeps_Other_Rooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := Sink{id: "1"}

	// Given a connection in a chat room and in the dashboard
	registry.Join("1", "010524100000", sink)
	registry.Join("1", chat.DashboardRoom, sink)

	// When it leaves the chat room
	registry.Leave("1", "010524100000")

	// Then it is still reachable through the dashboard
	req.Nil(registry.GetSinksForRoom("010524100000"))
	req.Len(registry.GetSinksForRoom(chat.DashboardRoom), 1)
	req.Equal(contract.RegistryStats{Connections: 1, Rooms: 1}, registry.Stats())

	// When it leaves its last room the session is gone
	registry.Leave("1", chat.DashboardRoom)
	req.Equal(contract.RegistryStats{}, registry.Stats())
}

func TestRegistry_Disconnect_Drops_All_Memberships(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink1 := Sink{id: "1"}
	sink2 := Sink{id: "2"}

	registry.Join("1", "010524100000", sink1)
	registry.Join("1", chat.DashboardRoom, sink1)
	registry.Join("2", "010524100000", sink2)

	// When the first connection goes away
	registry.Disconnect("1")

	// Then only the second one is left
	req.Nil(registry.GetSinksForRoom(chat.DashboardRoom))
	req.Equal([]contract.EventSink{sink2}, registry.GetSinksForRoom("010524100000"))
	req.Equal(contract.RegistryStats{Connections: 1, Rooms: 1}, registry.Stats())

	// Disconnecting an unknown connection is harmless
	registry.Disconnect("unknown")
	req.Equal(contract.RegistryStats{Connections: 1, Rooms: 1}, registry.Stats())
}
