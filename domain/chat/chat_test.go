package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProtocol_FixedTimezone(t *testing.T) {
	req := require.New(t)
	loc, err := LoadLocation(DefaultTimezone)
	req.NoError(err)

	// Given 2024-05-01 10:00:00 in São Paulo expressed in UTC
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	// Then the protocol is rendered in the fixed zone
	req.Equal("010524100000", Protocol(at, loc))
	req.True(IsProtocol(Protocol(at, loc)))
}

func TestIsProtocol(t *testing.T) {
	req := require.New(t)
	req.True(IsProtocol("010524100000"))
	req.False(IsProtocol(string(DashboardRoom)))
	req.False(IsProtocol("01052410000"))
	req.False(IsProtocol("01052410000a"))
}

func TestNewChat_DefaultsToOpen(t *testing.T) {
	req := require.New(t)
	loc, err := LoadLocation("")
	req.NoError(err)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, loc)

	c := NewChat("Ana", "a@x.com", now, loc)

	req.Equal("010524100000", c.ID)
	req.Equal(StatusOpen, c.Status)
	req.True(c.IsOpen())
	req.Equal(time.UTC, c.StartedAt.Location())
	req.Equal(RoomID("010524100000"), c.RoomID())
	req.Equal("2024-05-01 10:00:00", FormatDateTime(c.StartedAt, loc))
	req.Equal("10:00:00", FormatTime(c.StartedAt, loc))
}

func TestLastMessage(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	_, ok := LastMessage(nil)
	req.False(ok)

	// Given messages out of order with T2 > T1
	messages := []Message{
		{Seq: 1, Text: "t2", CreatedAt: at.Add(2 * time.Second)},
		{Seq: 2, Text: "t1", CreatedAt: at.Add(time.Second)},
	}
	last, ok := LastMessage(messages)
	req.True(ok)
	req.Equal("t2", last.Text)

	// Given two messages sharing the latest timestamp
	// Then the highest sequence wins
	messages = append(messages, Message{Seq: 3, Text: "t2-bis", CreatedAt: at.Add(2 * time.Second)})
	last, _ = LastMessage(messages)
	req.Equal("t2-bis", last.Text)
}

func TestCommands_Validate(t *testing.T) {
	req := require.New(t)

	req.NoError(OpenChatCommand{Name: "Ana", Email: "a@x.com"}.Validate())
	req.Error(OpenChatCommand{Name: "Ana"}.Validate())
	req.Error(OpenChatCommand{Email: "a@x.com"}.Validate())

	req.NoError(PostMessageCommand{Protocol: "010524100000", Sender: "cliente", Text: "oi"}.Validate())
	req.Error(PostMessageCommand{Protocol: "010524100000", Sender: "cliente"}.Validate())
	req.Error(PostMessageCommand{Sender: "cliente", Text: "oi"}.Validate())
	req.Equal(DashboardRoom, OpenChatCommand{}.RoomID())
	req.True(JoinRoomCommand{Protocol: "atendente_dashboard"}.RoomID().IsDashboard())
}
