package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/auth"
)

// ConnectWebSocket handles GET /api/ws. Browser WebSocket clients cannot
// set an Authorization header, so the token is also accepted as a query
// parameter.
func (h *Handler) ConnectWebSocket(w http.ResponseWriter, r *http.Request) {
	authValue := r.Header.Get("Authorization")
	if authValue == "" {
		authValue = r.URL.Query().Get("token")
	}

	claims, err := auth.ParseAuth(authValue, h.secret)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := h.hub.Upgrade(w, r, claims.UserID); err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("userId", claims.UserID.String()), zap.Error(err))
	}
}
