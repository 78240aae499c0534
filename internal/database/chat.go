package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetConversation returns the conversation between two users, messages in
// send order. The pair is unordered.
func (r *Repository) GetConversation(ctx context.Context, a, b uuid.UUID) (*Conversation, error) {
	var c Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, sender_id, receiver_id, created_at
		FROM conversations
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
	`, a, b).Scan(&c.ID, &c.SenderID, &c.ReceiverID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, sender_id, body, sent_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at ASC
	`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		c.Messages = append(c.Messages, m)
	}

	return &c, rows.Err()
}

// AppendMessage stores a message, creating the conversation for the pair if
// none exists yet, and returns the stored message.
func (r *Repository) AppendMessage(ctx context.Context, senderID, receiverID uuid.UUID, body string, sentAt time.Time) (*Message, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var conversationID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM conversations
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
	`, senderID, receiverID).Scan(&conversationID)
	if errors.Is(err, pgx.ErrNoRows) {
		conversationID = uuid.New()
		_, err = tx.Exec(ctx, `
			INSERT INTO conversations (id, sender_id, receiver_id)
			VALUES ($1, $2, $3)
		`, conversationID, senderID, receiverID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve conversation: %w", err)
	}

	m := &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		SentAt:         sentAt,
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.ConversationID, m.SenderID, m.Body, m.SentAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit message: %w", err)
	}
	return m, nil
}
