package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/models"
	"github.com/julianstephens/mindtrack/internal/storage"
)

const conversationColumns = `id, user_id, title, message_count, created_at, updated_at`

func scanConversation(row rowScanner) (models.Conversation, error) {
	var c models.Conversation
	var createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.MessageCount, &createdAt, &updatedAt)
	if err != nil {
		return models.Conversation{}, err
	}
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Conversation{}, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.Conversation{}, err
	}
	return c, nil
}

func (s *Store) CreateConversation(c models.Conversation) error {
	ts := now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = ts
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = ts
	}

	_, err := s.exec(`
		INSERT INTO chat_conversations (`+conversationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Title, c.MessageCount, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (s *Store) GetConversation(userID, id string) (models.Conversation, error) {
	c, err := scanConversation(s.queryRow(
		`SELECT `+conversationColumns+` FROM chat_conversations WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, fmt.Errorf("conversation %s: %w", id, storage.ErrNotFound)
	}
	return c, err
}

// ListConversations returns the user's conversations, most recently active first.
func (s *Store) ListConversations(userID string) ([]models.Conversation, error) {
	rows, err := s.query(`
		SELECT `+conversationColumns+` FROM chat_conversations
		WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (s *Store) AddChatMessage(m models.ChatMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now()
	}

	err := s.withTx(func(tx *sql.Tx) error {
		result, err := s.txExec(tx, `
			UPDATE chat_conversations SET message_count = message_count + 1, updated_at = ?
			WHERE id = ?`,
			formatTime(m.CreatedAt), m.ConversationID)
		if err != nil {
			return err
		}
		if err := expectAffected(result, fmt.Errorf("conversation %s: %w", m.ConversationID, storage.ErrNotFound)); err != nil {
			return err
		}

		_, err = s.txExec(tx, `
			INSERT INTO chat_messages (id, conversation_id, sender, content, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			m.ID, m.ConversationID, string(m.Sender), m.Content, formatTime(m.CreatedAt))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to add chat message: %w", err)
	}
	return nil
}

// ListChatMessages returns a conversation's messages in the order they were sent.
func (s *Store) ListChatMessages(conversationID string) ([]models.ChatMessage, error) {
	rows, err := s.query(`
		SELECT id, conversation_id, sender, content, created_at FROM chat_messages
		WHERE conversation_id = ? ORDER BY created_at, id`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		var sender, createdAt string
		if err := rows.Scan(&m.ID, &m.ConversationID, &sender, &m.Content, &createdAt); err != nil {
			return nil, err
		}
		m.Sender = models.Sender(sender)
		if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
