// Package sqlite provides a SQLite-backed chat repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"webchat/domain/chat"
	errs "webchat/errors"
	"webchat/infrastructure/storage/sqlite/migrations"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists chats and messages in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toNanos(value time.Time) int64 {
	return value.UTC().UnixNano()
}

func fromNanos(value int64) time.Time {
	return time.Unix(0, value).UTC()
}

// Open opens the database file at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) CreateChat(ctx context.Context, c chat.Chat) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create chat: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chats (id, cliente_nome, cliente_email, data_inicio, status)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.ClientName, c.ClientEmail, toNanos(c.StartedAt), string(c.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", errs.ErrChatAlreadyExists, c.ID)
		}
		return fmt.Errorf("create chat: %w", err)
	}
	return tx.Commit()
}

func (s *Store) GetChat(ctx context.Context, id string) (chat.Chat, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, cliente_nome, cliente_email, data_inicio, status FROM chats WHERE id = ?`, id)
	c, err := scanChat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Chat{}, fmt.Errorf("%w: %s", errs.ErrChatNotFound, id)
	}
	if err != nil {
		return chat.Chat{}, fmt.Errorf("get chat: %w", err)
	}
	return c, nil
}

func (s *Store) ListChatsByStatus(ctx context.Context, status chat.Status) ([]chat.Chat, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, cliente_nome, cliente_email, data_inicio, status
		 FROM chats WHERE status = ? ORDER BY data_inicio ASC, rowid ASC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []chat.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (s *Store) CreateMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return chat.Message{}, fmt.Errorf("begin create message: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var found int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM chats WHERE id = ?`, m.ChatID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Message{}, fmt.Errorf("%w: %s", errs.ErrChatNotFound, m.ChatID)
	}
	if err != nil {
		return chat.Message{}, fmt.Errorf("check chat: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO mensagens (id, chat_id, remetente, texto, data_hora) VALUES (?, ?, ?, ?, ?)`,
		m.ID.String(), m.ChatID, m.Sender, m.Text, toNanos(m.CreatedAt),
	)
	if err != nil {
		return chat.Message{}, fmt.Errorf("create message: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return chat.Message{}, fmt.Errorf("message sequence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return chat.Message{}, fmt.Errorf("commit message: %w", err)
	}
	m.Seq = uint64(seq)
	return m, nil
}

func (s *Store) GetMessages(ctx context.Context, chatID string) ([]chat.Message, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT seq, id, chat_id, remetente, texto, data_hora
		 FROM mensagens WHERE chat_id = ? ORDER BY seq ASC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var (
			m         chat.Message
			rawID     string
			createdAt int64
		)
		if err := rows.Scan(&m.Seq, &rawID, &m.ChatID, &m.Sender, &m.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if m.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("parse message id: %w", err)
		}
		m.CreatedAt = fromNanos(createdAt)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChat(row rowScanner) (chat.Chat, error) {
	var (
		c         chat.Chat
		startedAt int64
		status    string
	)
	if err := row.Scan(&c.ID, &c.ClientName, &c.ClientEmail, &startedAt, &status); err != nil {
		return chat.Chat{}, err
	}
	c.StartedAt = fromNanos(startedAt)
	c.Status = chat.Status(status)
	return c, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
