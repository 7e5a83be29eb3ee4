package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"
	"webchat/domain/chat"
	"webchat/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRender_Open_Chats(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	loc, err := chat.LoadLocation("")
	req.NoError(err)
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	// Given a store with an open and a closed chat
	repository, err := storage.OpenBadger(t.TempDir(), slog.Default(), false)
	req.NoError(err)
	defer repository.Close()
	req.NoError(repository.CreateChat(ctx, chat.Chat{ID: "010524100000", ClientName: "Ana", ClientEmail: "ana@x.com", StartedAt: at, Status: chat.StatusOpen}))
	req.NoError(repository.CreateChat(ctx, chat.Chat{ID: "010524100100", ClientName: "Bia", ClientEmail: "bia@x.com", StartedAt: at.Add(time.Minute), Status: chat.StatusClosed}))
	_, err = repository.CreateMessage(ctx, chat.Message{ID: uuid.New(), ChatID: "010524100000", Sender: "cliente", Text: "oi", CreatedAt: at})
	req.NoError(err)

	// When rendering without colours
	summaries, err := openSummaries(ctx, repository)
	req.NoError(err)
	var out bytes.Buffer
	render(&out, summaries, loc, false)

	// Then only the open chat is listed with its last message
	req.Contains(out.String(), "010524100000")
	req.Contains(out.String(), "2024-05-01 10:00:00")
	req.Contains(out.String(), "[10:00:00] cliente: oi")
	req.NotContains(out.String(), "010524100100")
}
