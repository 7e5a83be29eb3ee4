// Package storagetest holds the behaviour every chat repository must share.
package storagetest

import (
	"context"
	"testing"
	"time"
	"webchat/domain/chat"
	errs "webchat/errors"
	"webchat/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Factory func(t *testing.T) storage.IChatRepository

var at = time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

func newChat(id string, startedAt time.Time, status chat.Status) chat.Chat {
	return chat.Chat{
		ID:          id,
		ClientName:  "Ana",
		ClientEmail: "a@x.com",
		StartedAt:   startedAt,
		Status:      status,
	}
}

func newMessage(chatID, sender, text string, createdAt time.Time) chat.Message {
	return chat.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		Sender:    sender,
		Text:      text,
		CreatedAt: createdAt,
	}
}

// RunChatRepositoryContract runs the shared scenarios against a fresh
// repository for each subtest.
func RunChatRepositoryContract(t *testing.T, factory Factory) {
	t.Run("create and get chat", func(t *testing.T) {
		req := require.New(t)
		repository := factory(t)
		ctx := context.Background()
		c := newChat("010524100000", at, chat.StatusOpen)

		req.NoError(repository.CreateChat(ctx, c))

		fetched, err := repository.GetChat(ctx, c.ID)
		req.NoError(err)
		req.Equal(c, fetched)

		messages, err := repository.GetMessages(ctx, c.ID)
		req.NoError(err)
		req.Empty(messages)
	})

	t.Run("duplicate protocol is rejected", func(t *testing.T) {
		req := require.New(t)
		repository := factory(t)
		ctx := context.Background()
		first := newChat("010524100000", at, chat.StatusOpen)
		second := first
		second.ClientName = "Bia"

		req.NoError(repository.CreateChat(ctx, first))
		err := repository.CreateChat(ctx, second)
		req.ErrorIs(err, errs.ErrChatAlreadyExists)

		// Then the first chat is left untouched
		fetched, err := repository.GetChat(ctx, first.ID)
		req.NoError(err)
		req.Equal("Ana", fetched.ClientName)
	})

	t.Run("unknown chat", func(t *testing.T) {
		req := require.New(t)
		repository := factory(t)

		_, err := repository.GetChat(context.Background(), "999999999999")
		req.ErrorIs(err, errs.ErrChatNotFound)
	})

	t.Run("message for unknown chat is not stored", func(t *testing.T) {
		req := require.New(t)
		repository := factory(t)
		ctx := context.Background()

		_, err := repository.CreateMessage(ctx, newMessage("999999999999", "cliente", "oi", at))
		req.ErrorIs(err, errs.ErrChatNotFound)

		messages, err := repository.GetMessages(ctx, "999999999999")
		req.NoError(err)
		req.Empty(messages)
	})

	t.Run("messages keep insertion order", func(t *testing.T) {
		req := require.New(t)
		repository := factory(t)
		ctx := context.Background()
		c := newChat("010524100000", at, chat.StatusOpen)
		req.NoError(repository.CreateChat(ctx, c))

		// Given timestamps that do not follow insertion order
		inputs := []chat.Message{
			newMessage(c.ID, "cliente", "primeira", at.Add(2*time.Second)),
			newMessage(c.ID, "atendente", "segunda", at.Add(time.Second)),
			newMessage(c.ID, "cliente", "terceira", at.Add(time.Second)),
		}
		var stored []chat.Message
		for _, m := range inputs {
			s, err := repository.CreateMessage(ctx, m)
			req.NoError(err)
			stored = append(stored, s)
		}
		req.Less(stored[0].Seq, stored[1].Seq)
		req.Less(stored[1].Seq, stored[2].Seq)

		messages, err := repository.GetMessages(ctx, c.ID)
		req.NoError(err)
		req.Equal(stored, messages)
	})

	t.Run("messages are scoped to their chat", func(t *testing.T) {
		req := require.New(t)
		repository := factory(t)
		ctx := context.Background()
		req.NoError(repository.CreateChat(ctx, newChat("010524100000", at, chat.StatusOpen)))
		req.NoError(repository.CreateChat(ctx, newChat("010524100001", at.Add(time.Second), chat.StatusOpen)))

		_, err := repository.CreateMessage(ctx, newMessage("010524100000", "cliente", "a", at))
		req.NoError(err)
		_, err = repository.CreateMessage(ctx, newMessage("010524100001", "cliente", "b", at))
		req.NoError(err)

		messages, err := repository.GetMessages(ctx, "010524100001")
		req.NoError(err)
		req.Len(messages, 1)
		req.Equal("b", messages[0].Text)
	})

	t.Run("list by status ordered by start", func(t *testing.T) {
		req := require.New(t)
		repository := factory(t)
		ctx := context.Background()

		// Given protocols whose lexical order differs from their start order
		late := newChat("010524100000", at.Add(time.Hour), chat.StatusOpen)
		early := newChat("300424100000", at.Add(-24*time.Hour), chat.StatusOpen)
		closed := newChat("020524100000", at, chat.StatusClosed)
		for _, c := range []chat.Chat{late, early, closed} {
			req.NoError(repository.CreateChat(ctx, c))
		}

		open, err := repository.ListChatsByStatus(ctx, chat.StatusOpen)
		req.NoError(err)
		req.Equal([]chat.Chat{early, late}, open)

		none, err := repository.ListChatsByStatus(ctx, "arquivado")
		req.NoError(err)
		req.Empty(none)
	})
}
