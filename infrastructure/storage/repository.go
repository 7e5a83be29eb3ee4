//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../../mocks/mock_chat_repository.go -package=mocks
package storage

import (
	"context"
	"webchat/domain/chat"
)

// IChatRepository is the durable record of chats and messages.
// Every write runs in its own transaction: it is either fully applied or
// not at all.
type IChatRepository interface {
	// CreateChat fails with ErrChatAlreadyExists when the protocol is taken.
	CreateChat(ctx context.Context, c chat.Chat) error
	// GetChat fails with ErrChatNotFound.
	GetChat(ctx context.Context, id string) (chat.Chat, error)
	// ListChatsByStatus orders chats by StartedAt ascending.
	ListChatsByStatus(ctx context.Context, status chat.Status) ([]chat.Chat, error)
	// CreateMessage checks the chat exists in the same transaction and
	// fails with ErrChatNotFound otherwise. It returns the message with its
	// assigned sequence.
	CreateMessage(ctx context.Context, message chat.Message) (chat.Message, error)
	// GetMessages returns the messages of a chat in insertion order.
	GetMessages(ctx context.Context, chatID string) ([]chat.Message, error)
	Close() error
}
