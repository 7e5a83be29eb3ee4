//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"webchat/contract"
	"webchat/domain/chat"
	"webchat/domain/event"
	errs "webchat/errors"
	"webchat/infrastructure/storage"
	"webchat/runtime"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Join replies, kept in the language of the client pages.
const (
	MessageMissingProtocol = "Protocolo ausente."
	MessageChatNotFound    = "Chat não encontrado."
	MessageJoinFailed      = "Erro ao entrar na sala."
)

type IChatService interface {
	OpenChat(ctx context.Context, cmd chat.OpenChatCommand) (chat.Chat, error)
	GetChat(ctx context.Context, protocol string) (chat.Chat, []chat.Message, error)
	ListOpenChats(ctx context.Context) ([]chat.Summary, error)
	JoinRoom(ctx context.Context, cmd chat.JoinRoomCommand, sink contract.EventSink) event.RoomJoined
	SendMessage(ctx context.Context, cmd chat.PostMessageCommand) error
	Disconnect(connectionID string)
}

var _ IChatService = (*ChatService)(nil)

type ChatService struct {
	log          *slog.Logger
	repository   storage.IChatRepository
	registry     contract.IRegistry
	router       contract.IRouter
	locks        *runtime.RoomLocks
	location     *time.Location
	replyTimeout time.Duration
	now          func() time.Time
}

func NewChatService(log *slog.Logger, repository storage.IChatRepository,
	registry contract.IRegistry, router contract.IRouter,
	location *time.Location, replyTimeout time.Duration) *ChatService {
	return &ChatService{
		log:          log,
		repository:   repository,
		registry:     registry,
		router:       router,
		locks:        runtime.NewRoomLocks(),
		location:     location,
		replyTimeout: replyTimeout,
		now:          time.Now,
	}
}

// WithClock replaces the time source, mostly for tests.
func (s *ChatService) WithClock(now func() time.Time) *ChatService {
	s.now = now
	return s
}

// OpenChat stores a new open chat and notifies the dashboard room.
// The notification is only sent once the chat is committed, and a slow
// dashboard never delays the returned chat.
func (s *ChatService) OpenChat(ctx context.Context, cmd chat.OpenChatCommand) (chat.Chat, error) {
	if err := cmd.Validate(); err != nil {
		return chat.Chat{}, fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	c := chat.NewChat(cmd.Name, cmd.Email, s.now(), s.location)
	if err := s.repository.CreateChat(ctx, c); err != nil {
		s.log.Error("Failed to create chat", "protocol", c.ID, "error", err)
		return chat.Chat{}, fmt.Errorf("%w: %w", errs.ErrPersistence, err)
	}
	s.log.Info("Chat opened", "protocol", c.ID)

	// The room is taken here so joins and notifications keep their order,
	// the fan-out itself runs after the caller has its answer.
	unlock := s.locks.Lock(cmd.RoomID())
	opened := event.ChatOpened{
		ChatID:    c.ID,
		Client:    c.ClientName,
		StartedAt: c.StartedAt,
	}
	go func() {
		defer unlock()
		s.router.Broadcast(context.WithoutCancel(ctx), opened)
	}()
	return c, nil
}

func (s *ChatService) GetChat(ctx context.Context, protocol string) (chat.Chat, []chat.Message, error) {
	c, err := s.repository.GetChat(ctx, protocol)
	if err != nil {
		return chat.Chat{}, nil, err
	}
	messages, err := s.repository.GetMessages(ctx, protocol)
	if err != nil {
		return chat.Chat{}, nil, fmt.Errorf("messages of %s: %w", protocol, err)
	}
	return c, messages, nil
}

// ListOpenChats returns open chats by start time with their latest message.
func (s *ChatService) ListOpenChats(ctx context.Context) ([]chat.Summary, error) {
	chats, err := s.repository.ListChatsByStatus(ctx, chat.StatusOpen)
	if err != nil {
		return nil, fmt.Errorf("list open chats: %w", err)
	}
	summaries := make([]chat.Summary, 0, len(chats))
	for _, c := range chats {
		messages, err := s.repository.GetMessages(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("messages of %s: %w", c.ID, err)
		}
		summary := chat.Summary{Chat: c}
		if last, ok := chat.LastMessage(messages); ok {
			summary.LastMessage = lo.ToPtr(last)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// JoinRoom adds the connection to the room and replies on its sink only.
// The reply is queued under the room lock so it always precedes the
// first broadcast the connection receives from that room.
func (s *ChatService) JoinRoom(ctx context.Context, cmd chat.JoinRoomCommand, sink contract.EventSink) event.RoomJoined {
	s.log.Debug("Join requested",
		"protocol", cmd.Protocol,
		"connection_id", cmd.ConnectionID,
		"is_attendant", cmd.IsAttendant)

	roomID := cmd.RoomID()
	if cmd.Protocol == "" {
		return s.reply(ctx, sink, event.RoomJoined{Status: event.JoinError, Message: MessageMissingProtocol})
	}
	if !roomID.IsDashboard() {
		if _, err := s.repository.GetChat(ctx, cmd.Protocol); err != nil {
			message := MessageChatNotFound
			if !errors.Is(err, errs.ErrChatNotFound) {
				s.log.Error("Failed to look up chat", "protocol", cmd.Protocol, "error", err)
				message = MessageJoinFailed
			}
			return s.reply(ctx, sink, event.RoomJoined{Status: event.JoinError, Protocol: cmd.Protocol, Message: message})
		}
	}

	unlock := s.locks.Lock(roomID)
	defer unlock()
	s.registry.Join(cmd.ConnectionID, roomID, sink)
	return s.reply(ctx, sink, event.RoomJoined{Status: event.JoinSuccess, Protocol: cmd.Protocol})
}

// SendMessage stores the message then broadcasts it to the room, sender
// included. Invalid commands and unknown chats are returned as errors for
// logging only: the sender never hears about them.
// Store and broadcast happen under the room lock to keep per-room order.
func (s *ChatService) SendMessage(ctx context.Context, cmd chat.PostMessageCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	unlock := s.locks.Lock(cmd.RoomID())
	defer unlock()

	stored, err := s.repository.CreateMessage(ctx, chat.Message{
		ID:        uuid.New(),
		ChatID:    cmd.Protocol,
		Sender:    cmd.Sender,
		Text:      cmd.Text,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, errs.ErrChatNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", errs.ErrPersistence, err)
	}

	s.router.Broadcast(context.WithoutCancel(ctx), event.MessagePosted{
		ID:       stored.ID,
		Protocol: stored.ChatID,
		Sender:   stored.Sender,
		Text:     stored.Text,
		At:       stored.CreatedAt,
	})
	return nil
}

func (s *ChatService) Disconnect(connectionID string) {
	s.registry.Disconnect(connectionID)
}

func (s *ChatService) reply(ctx context.Context, sink contract.EventSink, ack event.RoomJoined) event.RoomJoined {
	replyCtx, cancel := context.WithTimeout(ctx, s.replyTimeout)
	defer cancel()
	if err := sink.Consume(replyCtx, ack); err != nil {
		s.log.Warn("Failed to reply to join", "protocol", ack.Protocol, "error", err)
	}
	return ack
}
