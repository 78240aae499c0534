package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeNotification MessageType = "notification"
	MessageTypeChatMessage  MessageType = "chat_message"
)

// Message is a payload pushed to a connected user
type Message struct {
	Type      MessageType `json:"type"`
	UserID    string      `json:"userId"`
	Body      string      `json:"body,omitempty"`
	SenderID  string      `json:"senderId,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
}

// Hub manages WebSocket connections per user
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan *Message
	log        *zap.Logger
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *Message, 256),
		log:        log,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()
			h.log.Debug("websocket client registered", zap.String("userId", client.userID.String()))

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.userID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug("websocket client unregistered", zap.String("userId", client.userID.String()))

		case message := <-h.deliver:
			userID, err := uuid.Parse(message.UserID)
			if err != nil {
				h.log.Warn("invalid user id in delivery", zap.String("userId", message.UserID))
				continue
			}

			data, err := json.Marshal(message)
			if err != nil {
				h.log.Warn("failed to marshal message", zap.Error(err))
				continue
			}

			h.mu.RLock()
			clients := h.clients[userID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[userID], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// SendNotification pushes a notification to a user's open connections.
// Fire-and-forget: a user with no connection simply misses it.
func (h *Hub) SendNotification(userID string, body string) {
	h.deliver <- &Message{
		Type:      MessageTypeNotification,
		UserID:    userID,
		Body:      body,
		Timestamp: time.Now().UnixMilli(),
	}
}

// SendChatMessage pushes a chat message to the receiving user.
func (h *Hub) SendChatMessage(receiverID, senderID, body string) {
	h.deliver <- &Message{
		Type:      MessageTypeChatMessage,
		UserID:    receiverID,
		SenderID:  senderID,
		Body:      body,
		Timestamp: time.Now().UnixMilli(),
	}
}

// IsConnected reports whether the user has at least one open connection.
func (h *Hub) IsConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}
