package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"webchat/infrastructure/storage"
	"webchat/infrastructure/storage/sqlite"
	"webchat/infrastructure/storage/storagetest"

	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	storagetest.RunChatRepositoryContract(t, func(t *testing.T) storage.IChatRepository {
		store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "chat.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestOpen_Applies_Migrations_Once(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "chat.db")

	store, err := sqlite.Open(context.Background(), path)
	req.NoError(err)
	req.NoError(store.Close())

	// Reopening the same file must not fail on existing tables
	store, err = sqlite.Open(context.Background(), path)
	req.NoError(err)
	req.NoError(store.Close())
}

func TestOpen_Requires_Path(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "  ")
	require.Error(t, err)
}
