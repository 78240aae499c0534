package handlers

import (
	"net/http"
	"time"

	"github.com/locauto/locauto-backend/internal/auth"
)

type createReservationRequest struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// CreateReservation handles POST /api/vehicles/{id}/reservations
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	vehicleID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var req createReservationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.rental.CreateReservation(r.Context(), vehicleID, claims.UserID, req.StartDate, req.EndDate)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, res)
}

// ApproveReservation handles PUT /api/vehicles/{id}/reservations/{reservationId}/approve
func (h *Handler) ApproveReservation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	vehicleID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}
	reservationID, err := pathUUID(r, "reservationId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reservation ID")
		return
	}

	res, err := h.rental.ApproveReservation(r.Context(), claims.UserID, vehicleID, reservationID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// RejectReservation handles PUT /api/vehicles/{id}/reservations/{reservationId}/reject
func (h *Handler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	vehicleID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}
	reservationID, err := pathUUID(r, "reservationId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reservation ID")
		return
	}

	res, err := h.rental.RejectReservation(r.Context(), claims.UserID, vehicleID, reservationID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// DeleteReservation handles DELETE /api/vehicles/{id}/reservations/{reservationId}
func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	vehicleID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}
	reservationID, err := pathUUID(r, "reservationId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid reservation ID")
		return
	}

	if err := h.rental.RemoveReservation(r.Context(), claims.UserID, vehicleID, reservationID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "reservation removed"})
}

// GetVehicleReservations handles GET /api/vehicles/{id}/reservations
func (h *Handler) GetVehicleReservations(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	vehicleID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	reservations, err := h.rental.VehicleReservations(r.Context(), claims.UserID, vehicleID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}

// GetMyReservations handles GET /api/reservations/mine
func (h *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	reservations, err := h.rental.ReservationsByUser(r.Context(), claims.UserID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}

// GetReservations handles GET /api/reservations
func (h *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.rental.AllReservations(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reservations)
}

// GetStatistics handles GET /api/stats
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.rental.Statistics(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetMyStatistics handles GET /api/my/stats
func (h *Handler) GetMyStatistics(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	stats, err := h.rental.CompanyStatistics(r.Context(), claims.UserID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
