package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"webchat/domain/chat"
	"webchat/domain/event"
)

// Client events.
const (
	EventJoinRoom    = "entrar_sala"
	EventSendMessage = "enviar_mensagem"
)

// Frame is the JSON envelope of every text frame, in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outgoingFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type joinRoomData struct {
	Protocolo   string `json:"protocolo"`
	IsAtendente any    `json:"is_atendente"`
}

// attendant reads is_atendente loosely, a value of the wrong type is false.
func (d joinRoomData) attendant() bool {
	switch v := d.IsAtendente.(type) {
	case bool:
		return v
	case string:
		flag, err := strconv.ParseBool(v)
		return err == nil && flag
	case float64:
		return v != 0
	default:
		return false
	}
}

// payload returns the frame data, an absent or null data reads as an empty object.
func (f Frame) payload() []byte {
	if len(f.Data) == 0 {
		return []byte("{}")
	}
	return f.Data
}

type sendMessageData struct {
	Protocolo string `json:"protocolo"`
	Remetente string `json:"remetente"`
	Texto     string `json:"texto"`
}

type chatOpenedData struct {
	ID      string `json:"id"`
	Cliente string `json:"cliente"`
	Data    string `json:"data"`
}

type messagePostedData struct {
	Protocolo string `json:"protocolo"`
	Remetente string `json:"remetente"`
	Texto     string `json:"texto"`
	Data      string `json:"data"`
}

type roomJoinedData struct {
	Status    event.JoinStatus `json:"status"`
	Protocolo string           `json:"protocolo,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// Encode renders a domain event as a text frame, dates in loc.
func Encode(e event.DomainEvent, loc *time.Location) ([]byte, error) {
	var data any
	switch e := e.(type) {
	case event.ChatOpened:
		data = chatOpenedData{ID: e.ChatID, Cliente: e.Client, Data: chat.FormatDateTime(e.StartedAt, loc)}
	case event.MessagePosted:
		data = messagePostedData{Protocolo: e.Protocol, Remetente: e.Sender, Texto: e.Text, Data: chat.FormatTime(e.At, loc)}
	case event.RoomJoined:
		data = roomJoinedData{Status: e.Status, Message: e.Message}
		if e.Succeeded() {
			data = roomJoinedData{Status: e.Status, Protocolo: e.Protocol}
		}
	default:
		return nil, fmt.Errorf("no frame for event %T", e)
	}
	return json.Marshal(outgoingFrame{Event: e.Name(), Data: data})
}
