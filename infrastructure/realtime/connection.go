package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
	"webchat/domain/chat"
	errs "webchat/errors"
	"webchat/services"
	"webchat/sink"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
)

// Connection is one upgraded client. It is read by readPump and written
// only by writePump, which drains the sink in order.
type Connection struct {
	id       string
	log      *slog.Logger
	conn     *websocket.Conn
	sink     *sink.ConnectionSink
	service  services.IChatService
	location *time.Location
}

func (c *Connection) readPump(ctx context.Context) {
	defer func() {
		c.service.Disconnect(c.id)
		c.sink.Close()
		_ = c.conn.Close()
		c.log.Debug("Connection closed")
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Warn("Unexpected close", "error", err)
			}
			return
		}
		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			c.log.Debug("Ignoring undecodable frame", "error", err)
			continue
		}
		c.handle(ctx, frame)
	}
}

func (c *Connection) handle(ctx context.Context, frame Frame) {
	switch frame.Event {
	case EventJoinRoom:
		var data joinRoomData
		if err := json.Unmarshal(frame.payload(), &data); err != nil {
			c.log.Debug("Ignoring malformed join", "error", err)
			return
		}
		c.service.JoinRoom(ctx, chat.JoinRoomCommand{
			Protocol:     data.Protocolo,
			ConnectionID: c.id,
			IsAttendant:  data.attendant(),
		}, c.sink)
	case EventSendMessage:
		var data sendMessageData
		if err := json.Unmarshal(frame.payload(), &data); err != nil {
			c.log.Debug("Ignoring malformed message", "error", err)
			return
		}
		err := c.service.SendMessage(ctx, chat.PostMessageCommand{
			Protocol: data.Protocolo,
			Sender:   data.Remetente,
			Text:     data.Texto,
		})
		switch {
		case err == nil:
		case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrChatNotFound):
			c.log.Debug("Message dropped", "protocol", data.Protocolo, "error", err)
		default:
			c.log.Error("Failed to send message", "protocol", data.Protocolo, "error", err)
		}
	default:
		c.log.Debug("Ignoring unknown event", "event", frame.Event)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case e := <-c.sink.Events():
			message, err := Encode(e, c.location)
			if err != nil {
				c.log.Warn("Failed to encode event", "event", e.Name(), "error", err)
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Debug("Write failed", "error", err)
				c.sink.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.sink.Close()
				return
			}
		case <-c.sink.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
