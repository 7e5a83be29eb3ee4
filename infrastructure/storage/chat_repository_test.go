package storage_test

import (
	"context"
	"log/slog"
	"testing"
	"time"
	"webchat/domain/chat"
	"webchat/infrastructure/storage"
	"webchat/infrastructure/storage/storagetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_Contract(t *testing.T) {
	storagetest.RunChatRepositoryContract(t, func(t *testing.T) storage.IChatRepository {
		repository, err := storage.OpenBadger(t.TempDir(), slog.Default(), false)
		require.NoError(t, err)
		t.Cleanup(func() { _ = repository.Close() })
		return repository
	})
}

func TestChatRepository_Survives_Reopen(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	// Given a chat with one message written then closed
	repository, err := storage.OpenBadger(dir, slog.Default(), false)
	req.NoError(err)
	c := chat.Chat{ID: "010524100000", ClientName: "Ana", ClientEmail: "a@x.com", StartedAt: at, Status: chat.StatusOpen}
	req.NoError(repository.CreateChat(ctx, c))
	first, err := repository.CreateMessage(ctx, chat.Message{ID: uuid.New(), ChatID: c.ID, Sender: "cliente", Text: "oi", CreatedAt: at})
	req.NoError(err)
	req.NoError(repository.Close())

	// When the database is reopened
	repository, err = storage.OpenBadger(dir, slog.Default(), false)
	req.NoError(err)
	defer repository.Close()

	// Then new messages still sort after the old ones
	second, err := repository.CreateMessage(ctx, chat.Message{ID: uuid.New(), ChatID: c.ID, Sender: "atendente", Text: "olá", CreatedAt: at})
	req.NoError(err)
	req.Greater(second.Seq, first.Seq)

	messages, err := repository.GetMessages(ctx, c.ID)
	req.NoError(err)
	req.Equal([]chat.Message{first, second}, messages)
}

func TestOpen_Unknown_Driver(t *testing.T) {
	_, err := storage.Open(context.Background(), slog.Default(), storage.Options{Driver: "mongo"})
	require.Error(t, err)
}
