package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/locauto/locauto-backend/internal/auth"
	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/handlers"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, jwtSecret string) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/vehicles", h.GetVehicles).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/vehicles/{id}", h.GetVehicle).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for real-time notifications and chat; authenticates itself
	// from the token query parameter.
	api.HandleFunc("/ws", h.ConnectWebSocket)

	// Authenticated
	secured := api.NewRoute().Subrouter()
	secured.Use(auth.Middleware(jwtSecret))

	secured.HandleFunc("/users", h.GetUsers).Methods(http.MethodGet, http.MethodOptions)
	secured.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet, http.MethodOptions)
	secured.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet, http.MethodOptions)
	secured.HandleFunc("/profile", h.UpdateProfile).Methods(http.MethodPut, http.MethodOptions)
	secured.HandleFunc("/profile", h.DeleteAccount).Methods(http.MethodDelete, http.MethodOptions)
	secured.HandleFunc("/profile/avatar", h.UploadAvatar).Methods(http.MethodPost, http.MethodOptions)

	secured.HandleFunc("/vehicles/{id}/reservations", h.CreateReservation).Methods(http.MethodPost, http.MethodOptions)
	secured.HandleFunc("/vehicles/{id}/reservations/{reservationId}", h.DeleteReservation).Methods(http.MethodDelete, http.MethodOptions)
	secured.HandleFunc("/reservations/mine", h.GetMyReservations).Methods(http.MethodGet, http.MethodOptions)
	secured.HandleFunc("/stats", h.GetStatistics).Methods(http.MethodGet, http.MethodOptions)

	secured.HandleFunc("/chat", h.SendMessage).Methods(http.MethodPost, http.MethodOptions)
	secured.HandleFunc("/chat/{peerId}", h.GetConversation).Methods(http.MethodGet, http.MethodOptions)
	secured.HandleFunc("/notifications/send", h.SendNotification).Methods(http.MethodPost, http.MethodOptions)

	// Company-only
	company := secured.NewRoute().Subrouter()
	company.Use(auth.RequireRole(database.RoleCompany))

	company.HandleFunc("/vehicles", h.CreateVehicle).Methods(http.MethodPost, http.MethodOptions)
	company.HandleFunc("/vehicles/{id}", h.UpdateVehicle).Methods(http.MethodPut, http.MethodOptions)
	company.HandleFunc("/vehicles/{id}", h.DeleteVehicle).Methods(http.MethodDelete, http.MethodOptions)
	company.HandleFunc("/vehicles/{id}/status", h.SetVehicleStatus).Methods(http.MethodPut, http.MethodOptions)
	company.HandleFunc("/vehicles/{id}/reservations", h.GetVehicleReservations).Methods(http.MethodGet, http.MethodOptions)
	company.HandleFunc("/vehicles/{id}/reservations/{reservationId}/approve", h.ApproveReservation).Methods(http.MethodPut, http.MethodOptions)
	company.HandleFunc("/vehicles/{id}/reservations/{reservationId}/reject", h.RejectReservation).Methods(http.MethodPut, http.MethodOptions)
	company.HandleFunc("/reservations", h.GetReservations).Methods(http.MethodGet, http.MethodOptions)
	company.HandleFunc("/my/vehicles", h.GetMyVehicles).Methods(http.MethodGet, http.MethodOptions)
	company.HandleFunc("/my/stats", h.GetMyStatistics).Methods(http.MethodGet, http.MethodOptions)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
