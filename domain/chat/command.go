package chat

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type Command interface {
	RoomID() RoomID
}

// OpenChatCommand is the client request creating a chat.
type OpenChatCommand struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

func (c OpenChatCommand) RoomID() RoomID {
	return DashboardRoom
}

func (c OpenChatCommand) Validate() error {
	return validate.Struct(c)
}

// JoinRoomCommand asks to add a connection to a room.
// IsAttendant is advisory only.
type JoinRoomCommand struct {
	Protocol     string
	ConnectionID string
	IsAttendant  bool
}

func (c JoinRoomCommand) RoomID() RoomID {
	return RoomID(c.Protocol)
}

// PostMessageCommand is a message sent over a real-time connection.
type PostMessageCommand struct {
	Protocol string `validate:"required"`
	Sender   string `validate:"required"`
	Text     string `validate:"required"`
}

func (c PostMessageCommand) RoomID() RoomID {
	return RoomID(c.Protocol)
}

func (c PostMessageCommand) Validate() error {
	return validate.Struct(c)
}
