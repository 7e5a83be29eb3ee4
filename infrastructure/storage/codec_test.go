package storage

import (
	"testing"
	"time"
	"webchat/domain/chat"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestCodec_Skips_Unknown_Fields(t *testing.T) {
	req := require.New(t)
	c := chat.Chat{
		ID:          "010524100000",
		ClientName:  "Ana",
		ClientEmail: "a@x.com",
		StartedAt:   time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC),
		Status:      chat.StatusOpen,
	}

	// Given a record carrying a field this binary does not know
	b := marshalChat(c)
	b = protowire.AppendTag(b, 42, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 7)

	decoded, err := unmarshalChat(b)
	req.NoError(err)
	req.Equal(c, decoded)
}

func TestCodec_Rejects_Truncated_Record(t *testing.T) {
	req := require.New(t)
	b := marshalMessage(chat.Message{ID: uuid.New(), ChatID: "010524100000", Text: "oi"})

	_, err := unmarshalMessage(b[:len(b)-3])
	req.Error(err)
}
