package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"webchat/domain/chat"
	errs "webchat/errors"

	"github.com/dgraph-io/badger/v4"
)

const (
	chatPrefix      = "chat:"
	messagePrefix   = "msg:"
	messageSequence = "seq:msg"
	// Sequence numbers leased per round trip. Unused ones are lost on
	// restart which only leaves gaps.
	sequenceBandwidth = 100
)

var _ IChatRepository = (*ChatRepository)(nil)

// ChatRepository keeps chats and messages in BadgerDB.
//
//	chat:{protocol}                 -> Chat
//	msg:{protocol}:{seq 20 digits}  -> Message
//
// The zero padded sequence keeps a prefix scan in insertion order.
type ChatRepository struct {
	db       *badger.DB
	log      *slog.Logger
	sequence *badger.Sequence
}

func NewChatRepository(db *badger.DB, log *slog.Logger) (*ChatRepository, error) {
	seq, err := db.GetSequence([]byte(messageSequence), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &ChatRepository{db: db, log: log, sequence: seq}, nil
}

// OpenBadger opens the database at path and wraps it in a repository.
// A read-only repository cannot write messages.
func OpenBadger(path string, log *slog.Logger, readOnly bool) (*ChatRepository, error) {
	options := badger.DefaultOptions(path).
		WithLogger(NewBadgerLogger(log)).
		WithReadOnly(readOnly)
	if readOnly {
		options = options.WithBypassLockGuard(true)
	}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", path, err)
	}
	if readOnly {
		return &ChatRepository{db: db, log: log}, nil
	}
	repository, err := NewChatRepository(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repository, nil
}

// DB exposes the underlying database for the debug inspector.
func (r *ChatRepository) DB() *badger.DB {
	return r.db
}

func chatKey(id string) []byte {
	return []byte(chatPrefix + id)
}

func messageKey(chatID string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d", messagePrefix, chatID, seq))
}

func (r *ChatRepository) CreateChat(ctx context.Context, c chat.Chat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value := marshalChat(c)
	return r.db.Update(func(txn *badger.Txn) error {
		key := chatKey(c.ID)
		_, err := txn.Get(key)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", errs.ErrChatAlreadyExists, c.ID)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return txn.Set(key, value)
	})
}

func (r *ChatRepository) GetChat(ctx context.Context, id string) (chat.Chat, error) {
	if err := ctx.Err(); err != nil {
		return chat.Chat{}, err
	}
	var c chat.Chat
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chatKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			c, err = unmarshalChat(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return chat.Chat{}, fmt.Errorf("%w: %s", errs.ErrChatNotFound, id)
	}
	return c, err
}

func (r *ChatRepository) ListChatsByStatus(ctx context.Context, status chat.Status) ([]chat.Chat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var chats []chat.Chat
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(chatPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				c, err := unmarshalChat(val)
				if err != nil {
					return err
				}
				if c.Status == status {
					chats = append(chats, c)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Keys sort by protocol (ddMMyy...), not by time
	slices.SortStableFunc(chats, func(a, b chat.Chat) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return chats, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return chat.Message{}, err
	}
	if r.sequence == nil {
		return chat.Message{}, fmt.Errorf("repository is read-only")
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(chatKey(m.ChatID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", errs.ErrChatNotFound, m.ChatID)
			}
			return err
		}
		seq, err := r.sequence.Next()
		if err != nil {
			return fmt.Errorf("next message sequence: %w", err)
		}
		// Badger sequences start at 0, ours at 1
		m.Seq = seq + 1
		return txn.Set(messageKey(m.ChatID, m.Seq), marshalMessage(m))
	})
	if err != nil {
		return chat.Message{}, err
	}
	return m, nil
}

// GetMessages scans msg:{protocol}: which is naturally in insertion order.
func (r *ChatRepository) GetMessages(ctx context.Context, chatID string) ([]chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var messages []chat.Message
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(messagePrefix + chatID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				m, err := unmarshalMessage(val)
				if err != nil {
					return err
				}
				messages = append(messages, m)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return messages, err
}

// Close releases the leased sequence before closing the database.
func (r *ChatRepository) Close() error {
	if r.sequence != nil {
		if err := r.sequence.Release(); err != nil {
			r.log.Warn("Failed to release message sequence", "error", err)
		}
	}
	return r.db.Close()
}
