package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/websocket"
)

// Notifier delivers a message to a user. Best-effort: implementations never
// return delivery failures to the caller.
type Notifier interface {
	Send(ctx context.Context, userID uuid.UUID, message string)
}

// UserLookup resolves the push token for a user.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*database.User, error)
}

// Relay sends to the user's live websocket connections and, when the user
// holds a push token, to the Expo push endpoint. Failures are logged and
// swallowed.
type Relay struct {
	hub     *websocket.Hub
	users   UserLookup
	pushURL string
	client  *http.Client
	log     *zap.Logger
}

// NewRelay builds the notification relay.
func NewRelay(hub *websocket.Hub, users UserLookup, pushURL string, log *zap.Logger) *Relay {
	return &Relay{
		hub:     hub,
		users:   users,
		pushURL: pushURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Send implements Notifier.
func (r *Relay) Send(ctx context.Context, userID uuid.UUID, message string) {
	r.hub.SendNotification(userID.String(), message)

	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		r.log.Warn("notification recipient lookup failed",
			zap.String("userId", userID.String()), zap.Error(err))
		return
	}
	if user.PushToken == nil || *user.PushToken == "" {
		return
	}

	if err := r.push(ctx, *user.PushToken, message); err != nil {
		r.log.Warn("push delivery failed",
			zap.String("userId", userID.String()), zap.Error(err))
	}
}

func (r *Relay) push(ctx context.Context, token, message string) error {
	body, err := json.Marshal(map[string]string{
		"to":    token,
		"sound": "default",
		"title": "LocAuto",
		"body":  message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.pushURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("push endpoint returned %s", resp.Status)
	}
	return nil
}
