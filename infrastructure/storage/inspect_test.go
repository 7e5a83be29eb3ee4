package storage

import (
	"testing"
	"time"
	"webchat/domain/chat"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInspectMapper_Decodes_Records(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	c := chat.Chat{ID: "010524100000", ClientName: "Ana", ClientEmail: "ana@x.com", StartedAt: at, Status: chat.StatusOpen}
	row := InspectMapper(string(chatKey(c.ID)), marshalChat(c))
	req.Equal("CHAT", row.Type)
	req.Equal(c.ID, row.EntityID)
	req.Equal("Ana <ana@x.com> aberto", row.Detail)

	m := chat.Message{ID: uuid.New(), Seq: 7, ChatID: c.ID, Sender: "cliente", Text: "oi", CreatedAt: at}
	row = InspectMapper(string(messageKey(c.ID, m.Seq)), marshalMessage(m))
	req.Equal("MESSAGE", row.Type)
	req.Equal("cliente: oi", row.Detail)

	row = InspectMapper(string(chatKey("x")), []byte{0xff})
	req.Equal("Error: unmarshal failed", row.Detail)
}
