// Package chat contains the core concepts of the support relay:
// chats identified by a protocol, their messages and the rooms they map to.
package chat

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// RoomID names a real-time broadcast group.
// Chat rooms reuse the protocol; the dashboard room is reserved.
type RoomID string

// DashboardRoom is not backed by a Chat. Protocols are numeric so no
// generated protocol can ever equal it.
const DashboardRoom RoomID = "atendente_dashboard"

func (r RoomID) IsDashboard() bool {
	return r == DashboardRoom
}

type Status string

const (
	StatusOpen   Status = "aberto"
	StatusClosed Status = "fechado"
)

// Chat is a support request opened by a client.
type Chat struct {
	ID          string // protocol, immutable
	ClientName  string
	ClientEmail string
	StartedAt   time.Time
	Status      Status
}

// NewChat builds an open chat whose protocol is derived from now in loc.
func NewChat(name, email string, now time.Time, loc *time.Location) Chat {
	return Chat{
		ID:          Protocol(now, loc),
		ClientName:  name,
		ClientEmail: email,
		StartedAt:   now.UTC(),
		Status:      StatusOpen,
	}
}

func (c Chat) RoomID() RoomID {
	return RoomID(c.ID)
}

func (c Chat) IsOpen() bool {
	return c.Status == StatusOpen
}

// Message is immutable once stored.
// Seq is assigned by the store and follows insertion order.
type Message struct {
	ID        uuid.UUID
	Seq       uint64
	ChatID    string
	Sender    string
	Text      string
	CreatedAt time.Time
}

// LastMessage returns the message with the latest CreatedAt.
// Equal timestamps are broken by the highest Seq.
func LastMessage(messages []Message) (Message, bool) {
	if len(messages) == 0 {
		return Message{}, false
	}
	return lo.MaxBy(messages, func(a, b Message) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.Seq > b.Seq
		}
		return a.CreatedAt.After(b.CreatedAt)
	}), true
}

// Summary is one open chat as listed on the attendant dashboard.
type Summary struct {
	Chat        Chat
	LastMessage *Message
}
