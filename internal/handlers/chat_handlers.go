package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/locauto/locauto-backend/internal/auth"
)

type sendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiverId" validate:"required"`
	Body       string    `json:"body" validate:"required"`
}

// SendMessage handles POST /api/chat
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req sendMessageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	msg, err := h.chat.SendMessage(r.Context(), claims.UserID, req.ReceiverID, req.Body)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

// GetConversation handles GET /api/chat/{peerId}. The conversation is the
// one between the caller and the peer, regardless of who spoke first.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	peerID, err := pathUUID(r, "peerId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid peer ID")
		return
	}

	conv, err := h.chat.GetConversation(r.Context(), claims.UserID, peerID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conv)
}
