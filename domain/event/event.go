// Package event defines what the runtime routes to connected parties.
package event

import (
	"time"
	"webchat/domain/chat"

	"github.com/google/uuid"
)

// Names of the real-time events on the wire.
const (
	NameChatOpened    = "novo_chat_aberto"
	NameMessagePosted = "nova_mensagem"
	NameRoomJoined    = "sala_entrada"
)

type DomainEvent interface {
	RoomID() chat.RoomID
	Name() string
}

// ChatOpened is sent to the dashboard room when a client opens a chat.
type ChatOpened struct {
	ChatID    string
	Client    string
	StartedAt time.Time
}

func (e ChatOpened) RoomID() chat.RoomID { return chat.DashboardRoom }
func (e ChatOpened) Name() string        { return NameChatOpened }

// MessagePosted is sent to every member of the chat room once the
// message has been stored.
type MessagePosted struct {
	ID       uuid.UUID
	Protocol string
	Sender   string
	Text     string
	At       time.Time
}

func (e MessagePosted) RoomID() chat.RoomID { return chat.RoomID(e.Protocol) }
func (e MessagePosted) Name() string        { return NameMessagePosted }

type JoinStatus string

const (
	JoinSuccess JoinStatus = "success"
	JoinError   JoinStatus = "error"
)

// RoomJoined acknowledges a join attempt. It is only ever delivered
// to the connection that asked.
type RoomJoined struct {
	Status   JoinStatus
	Protocol string
	Message  string
}

func (e RoomJoined) RoomID() chat.RoomID { return chat.RoomID(e.Protocol) }
func (e RoomJoined) Name() string        { return NameRoomJoined }

func (e RoomJoined) Succeeded() bool { return e.Status == JoinSuccess }
