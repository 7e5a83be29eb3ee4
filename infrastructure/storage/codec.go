package storage

import (
	"fmt"
	"time"
	"webchat/domain/chat"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// Records are stored as protobuf wire messages:
//
//	Chat:    1 id, 2 client_name, 3 client_email, 4 started_at (unix nano), 5 status
//	Message: 1 id, 2 seq, 3 chat_id, 4 sender, 5 text, 6 created_at (unix nano)
//
// Unknown fields are skipped so records written by a newer binary still load.

func marshalChat(c chat.Chat) []byte {
	var b []byte
	b = appendString(b, 1, c.ID)
	b = appendString(b, 2, c.ClientName)
	b = appendString(b, 3, c.ClientEmail)
	b = appendVarint(b, 4, uint64(c.StartedAt.UnixNano()))
	b = appendString(b, 5, string(c.Status))
	return b
}

func unmarshalChat(b []byte) (chat.Chat, error) {
	var c chat.Chat
	err := consumeFields(b, func(num protowire.Number, str string, v uint64) {
		switch num {
		case 1:
			c.ID = str
		case 2:
			c.ClientName = str
		case 3:
			c.ClientEmail = str
		case 4:
			c.StartedAt = time.Unix(0, int64(v)).UTC()
		case 5:
			c.Status = chat.Status(str)
		}
	})
	if err != nil {
		return chat.Chat{}, fmt.Errorf("decode chat: %w", err)
	}
	return c, nil
}

func marshalMessage(m chat.Message) []byte {
	var b []byte
	b = appendString(b, 1, m.ID.String())
	b = appendVarint(b, 2, m.Seq)
	b = appendString(b, 3, m.ChatID)
	b = appendString(b, 4, m.Sender)
	b = appendString(b, 5, m.Text)
	b = appendVarint(b, 6, uint64(m.CreatedAt.UnixNano()))
	return b
}

func unmarshalMessage(b []byte) (chat.Message, error) {
	var m chat.Message
	var rawID string
	err := consumeFields(b, func(num protowire.Number, str string, v uint64) {
		switch num {
		case 1:
			rawID = str
		case 2:
			m.Seq = v
		case 3:
			m.ChatID = str
		case 4:
			m.Sender = str
		case 5:
			m.Text = str
		case 6:
			m.CreatedAt = time.Unix(0, int64(v)).UTC()
		}
	})
	if err != nil {
		return chat.Message{}, fmt.Errorf("decode message: %w", err)
	}
	if m.ID, err = uuid.Parse(rawID); err != nil {
		return chat.Message{}, fmt.Errorf("decode message id: %w", err)
	}
	return m, nil
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// consumeFields walks b and hands every string or varint field to fn.
func consumeFields(b []byte, fn func(num protowire.Number, str string, v uint64)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			fn(num, s, 0)
			b = b[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			fn(num, "", v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}
