package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/websocket"
)

// ChatStore is the slice of the repository the chat service consumes.
type ChatStore interface {
	AppendMessage(ctx context.Context, senderID, receiverID uuid.UUID, body string, sentAt time.Time) (*database.Message, error)
	GetConversation(ctx context.Context, a, b uuid.UUID) (*database.Conversation, error)
}

// ChatService persists direct messages and pushes them to the receiver.
type ChatService interface {
	SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, body string) (*database.Message, error)
	GetConversation(ctx context.Context, a, b uuid.UUID) (*database.Conversation, error)
}

type chatService struct {
	store ChatStore
	hub   *websocket.Hub
}

// NewChatService creates the chat service.
func NewChatService(store ChatStore, hub *websocket.Hub) ChatService {
	return &chatService{store: store, hub: hub}
}

func (s *chatService) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, body string) (*database.Message, error) {
	m, err := s.store.AppendMessage(ctx, senderID, receiverID, body, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// Live push is best-effort; the message is already persisted.
	if s.hub != nil {
		s.hub.SendChatMessage(receiverID.String(), senderID.String(), body)
	}
	return m, nil
}

func (s *chatService) GetConversation(ctx context.Context, a, b uuid.UUID) (*database.Conversation, error) {
	return s.store.GetConversation(ctx, a, b)
}
