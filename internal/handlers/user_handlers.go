package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/auth"
	"github.com/locauto/locauto-backend/internal/database"
)

type updateProfileRequest struct {
	Name      *string  `json:"name,omitempty"`
	PushToken *string  `json:"pushToken,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type sendNotificationRequest struct {
	UserID  uuid.UUID `json:"userId" validate:"required"`
	Message string    `json:"message" validate:"required"`
}

// GetUsers handles GET /api/users
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.GetUsers(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	user, err := h.accounts.GetUser(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetProfile handles GET /api/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	user, err := h.accounts.GetUser(r.Context(), claims.UserID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/profile. Absent fields are left unchanged.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req updateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), claims.UserID, database.UserProfileUpdate{
		Name:      req.Name,
		PushToken: req.PushToken,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UploadAvatar handles POST /api/profile/avatar
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		h.log.Error("avatar upload failed", zap.String("filename", header.Filename), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "avatar upload failed")
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), claims.UserID, database.UserProfileUpdate{
		AvatarURL: &url,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteAccount handles DELETE /api/profile
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := h.accounts.DeleteUser(r.Context(), claims.UserID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// SendNotification handles POST /api/notifications/send
func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	h.notifier.Send(r.Context(), req.UserID, req.Message)
	respondJSON(w, http.StatusOK, map[string]string{"message": "notification dispatched"})
}
