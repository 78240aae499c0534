package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/notify"
	"github.com/locauto/locauto-backend/internal/service"
	"github.com/locauto/locauto-backend/internal/storage"
	"github.com/locauto/locauto-backend/internal/websocket"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	rental   service.RentalService
	accounts service.AccountService
	chat     service.ChatService
	notifier notify.Notifier
	uploader storage.Uploader
	hub      *websocket.Hub
	secret   string
	validate *validator.Validate
	log      *zap.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(
	rental service.RentalService,
	accounts service.AccountService,
	chat service.ChatService,
	notifier notify.Notifier,
	uploader storage.Uploader,
	hub *websocket.Hub,
	secret string,
	log *zap.Logger,
) *Handler {
	return &Handler{
		rental:   rental,
		accounts: accounts,
		chat:     chat,
		notifier: notifier,
		uploader: uploader,
		hub:      hub,
		secret:   secret,
		validate: validator.New(),
		log:      log,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain failures onto HTTP statuses.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrConflict):
		respondError(w, http.StatusConflict, "conflicting approved reservation")
	case errors.Is(err, database.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "email already registered")
	case errors.Is(err, service.ErrInvalidInterval):
		respondError(w, http.StatusBadRequest, "start date must be before end date")
	case errors.Is(err, service.ErrInvalidICE):
		respondError(w, http.StatusBadRequest, "invalid ICE number")
	case errors.Is(err, service.ErrVehicleUnavailable):
		respondError(w, http.StatusUnprocessableEntity, "vehicle is not accepting reservations")
	case errors.Is(err, service.ErrNotOwner):
		respondError(w, http.StatusForbidden, "vehicle belongs to another company")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	default:
		h.log.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
