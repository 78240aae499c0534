package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/auth"
	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/service"
)

const maxUploadBytes = 32 << 20

type updateVehicleRequest struct {
	Make        string   `json:"make" validate:"required"`
	Model       string   `json:"model" validate:"required"`
	Year        int      `json:"year" validate:"required,gte=1950"`
	Color       string   `json:"color" validate:"required"`
	Mileage     int      `json:"mileage" validate:"gte=0"`
	PricePerDay float64  `json:"pricePerDay" validate:"required,gt=0"`
	Images      []string `json:"images,omitempty"`
}

type vehicleStatusRequest struct {
	Status database.VehicleStatus `json:"status" validate:"required,oneof=available booked broken"`
}

// CreateVehicle handles POST /api/vehicles. The listing arrives as a
// multipart form so image files can ride along with the attributes.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}
	mileage, err := strconv.Atoi(r.FormValue("mileage"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid mileage")
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("pricePerDay"), 64)
	if err != nil || price <= 0 {
		respondError(w, http.StatusBadRequest, "invalid pricePerDay")
		return
	}

	in := service.CreateVehicleInput{
		CompanyID:   claims.UserID,
		Make:        r.FormValue("make"),
		Model:       r.FormValue("model"),
		Year:        year,
		Color:       r.FormValue("color"),
		Mileage:     mileage,
		PricePerDay: price,
	}
	if in.Make == "" || in.Model == "" {
		respondError(w, http.StatusBadRequest, "make and model are required")
		return
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			url, err := h.storeImage(r, fh)
			if err != nil {
				h.log.Error("image upload failed", zap.String("filename", fh.Filename), zap.Error(err))
				respondError(w, http.StatusInternalServerError, "image upload failed")
				return
			}
			in.Images = append(in.Images, url)
		}
	}

	vehicle, err := h.rental.CreateVehicle(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *Handler) storeImage(r *http.Request, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.uploader.Upload(r.Context(), fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
}

// GetVehicles handles GET /api/vehicles
func (h *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.rental.GetVehicles(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// GetVehicle handles GET /api/vehicles/{id}
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	vehicle, err := h.rental.GetVehicle(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// GetMyVehicles handles GET /api/my/vehicles
func (h *Handler) GetMyVehicles(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	vehicles, err := h.rental.GetCompanyVehicles(r.Context(), claims.UserID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// UpdateVehicle handles PUT /api/vehicles/{id}
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var req updateVehicleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	vehicle, err := h.rental.UpdateVehicle(r.Context(), claims.UserID, id, service.UpdateVehicleInput{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Color:       req.Color,
		Mileage:     req.Mileage,
		PricePerDay: req.PricePerDay,
		Images:      req.Images,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// SetVehicleStatus handles PUT /api/vehicles/{id}/status
func (h *Handler) SetVehicleStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var req vehicleStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.rental.SetVehicleCondition(r.Context(), claims.UserID, id, req.Status); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

// DeleteVehicle handles DELETE /api/vehicles/{id}
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	if err := h.rental.DeleteVehicle(r.Context(), claims.UserID, id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "vehicle deleted"})
}
