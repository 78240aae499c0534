package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/auth"
	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/service"
	"github.com/locauto/locauto-backend/internal/service/mocks"
)

const testSecret = "test-secret"

type testEnv struct {
	rental   *mocks.MockRentalService
	accounts *mocks.MockAccountService
	chat     *mocks.MockChatService
	notifier *mocks.MockNotifier
	router   *mux.Router
}

func newTestEnv() *testEnv {
	env := &testEnv{
		rental:   new(mocks.MockRentalService),
		accounts: new(mocks.MockAccountService),
		chat:     new(mocks.MockChatService),
		notifier: new(mocks.MockNotifier),
	}
	h := NewHandler(env.rental, env.accounts, env.chat, env.notifier, nil, nil, testSecret, zap.NewNop())
	env.router = setupTestRouter(h)
	return env
}

func setupTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", h.GetVehicles).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", h.GetVehicle).Methods(http.MethodGet)

	secured := api.NewRoute().Subrouter()
	secured.Use(auth.Middleware(testSecret))
	secured.HandleFunc("/vehicles/{id}/reservations", h.CreateReservation).Methods(http.MethodPost)
	secured.HandleFunc("/vehicles/{id}/reservations", h.GetVehicleReservations).Methods(http.MethodGet)
	secured.HandleFunc("/vehicles/{id}/reservations/{reservationId}", h.DeleteReservation).Methods(http.MethodDelete)
	secured.HandleFunc("/vehicles/{id}/reservations/{reservationId}/approve", h.ApproveReservation).Methods(http.MethodPut)
	secured.HandleFunc("/vehicles/{id}/reservations/{reservationId}/reject", h.RejectReservation).Methods(http.MethodPut)
	secured.HandleFunc("/reservations/mine", h.GetMyReservations).Methods(http.MethodGet)
	secured.HandleFunc("/chat", h.SendMessage).Methods(http.MethodPost)
	return r
}

func bearer(t *testing.T, userID uuid.UUID, role database.Role) string {
	t.Helper()
	token, err := auth.Issue(testSecret, userID, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandler_Register(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *database.User
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name: "valid registration",
			requestBody: registerRequest{
				Name:     "Amal Berrada",
				Email:    "amal@example.com",
				Password: "secret123",
			},
			mockReturn: &database.User{
				ID:    userID,
				Name:  "Amal Berrada",
				Email: "amal@example.com",
				Role:  database.RoleUser,
			},
			expectedStatus: http.StatusCreated,
			shouldCallMock: true,
		},
		{
			name: "unknown ICE",
			requestBody: registerRequest{
				Name:     "Ghost Rentals",
				Email:    "ghost@example.com",
				Password: "secret123",
				ICE:      "000000000",
			},
			mockError:      service.ErrInvalidICE,
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: true,
		},
		{
			name: "email already registered",
			requestBody: registerRequest{
				Name:     "Amal Berrada",
				Email:    "amal@example.com",
				Password: "secret123",
			},
			mockError:      database.ErrEmailTaken,
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: true,
		},
		{
			name: "missing email",
			requestBody: registerRequest{
				Name:     "Amal Berrada",
				Password: "secret123",
			},
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: false,
		},
		{
			name: "password too short",
			requestBody: registerRequest{
				Name:     "Amal Berrada",
				Email:    "amal@example.com",
				Password: "abc",
			},
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			if tt.shouldCallMock {
				env.accounts.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).Return(tt.mockReturn, tt.mockError)
			}

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			env.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			env.accounts.AssertExpectations(t)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		mockToken      string
		mockUser       *database.User
		mockError      error
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			mockToken:      "signed.jwt.token",
			mockUser:       &database.User{ID: userID, Email: "amal@example.com", Role: database.RoleUser},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			mockError:      service.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.accounts.On("Login", mock.Anything, "amal@example.com", "secret123").Return(tt.mockToken, tt.mockUser, tt.mockError)

			body, _ := json.Marshal(loginRequest{Email: "amal@example.com", Password: "secret123"})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			env.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp loginResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "signed.jwt.token", resp.Token)
				assert.Equal(t, userID, resp.User.ID)
			}
			env.accounts.AssertExpectations(t)
		})
	}
}

func TestHandler_GetVehicles(t *testing.T) {
	env := newTestEnv()

	vehicleID := uuid.New()
	env.rental.On("GetVehicles", mock.Anything).Return([]database.Vehicle{
		{ID: vehicleID, Make: "Dacia", Model: "Logan", Year: 2021, PricePerDay: 250},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	rec := httptest.NewRecorder()

	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []database.Vehicle
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Len(t, response, 1)
	assert.Equal(t, "Logan", response[0].Model)

	env.rental.AssertExpectations(t)
}

func TestHandler_GetVehicle(t *testing.T) {
	vehicleID := uuid.New()

	tests := []struct {
		name           string
		vehicleID      string
		mockReturn     *database.Vehicle
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:           "vehicle found",
			vehicleID:      vehicleID.String(),
			mockReturn:     &database.Vehicle{ID: vehicleID, Make: "Renault", Model: "Clio"},
			expectedStatus: http.StatusOK,
			shouldCallMock: true,
		},
		{
			name:           "vehicle not found",
			vehicleID:      uuid.New().String(),
			mockError:      database.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			shouldCallMock: true,
		},
		{
			name:           "malformed id",
			vehicleID:      "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
			shouldCallMock: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			if tt.shouldCallMock {
				env.rental.On("GetVehicle", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/vehicles/"+tt.vehicleID, nil)
			rec := httptest.NewRecorder()

			env.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			env.rental.AssertExpectations(t)
		})
	}
}

func TestHandler_CreateReservation(t *testing.T) {
	vehicleID := uuid.New()
	userID := uuid.New()
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		mockReturn     *database.Reservation
		mockError      error
		expectedStatus int
	}{
		{
			name: "reservation created",
			mockReturn: &database.Reservation{
				ID:        uuid.New(),
				VehicleID: vehicleID,
				UserID:    userID,
				Status:    database.ReservationStatusPending,
				StartDate: start,
				EndDate:   end,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "overlapping approved reservation",
			mockError:      database.ErrConflict,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "vehicle out of service",
			mockError:      service.ErrVehicleUnavailable,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "inverted interval",
			mockError:      service.ErrInvalidInterval,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.rental.On("CreateReservation", mock.Anything, vehicleID, userID,
				mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(tt.mockReturn, tt.mockError)

			body, _ := json.Marshal(createReservationRequest{StartDate: start, EndDate: end})
			req := httptest.NewRequest(http.MethodPost, "/api/vehicles/"+vehicleID.String()+"/reservations", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", bearer(t, userID, database.RoleUser))
			rec := httptest.NewRecorder()

			env.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			env.rental.AssertExpectations(t)
		})
	}
}

func TestHandler_CreateReservation_Unauthenticated(t *testing.T) {
	env := newTestEnv()

	body, _ := json.Marshal(createReservationRequest{
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/vehicles/"+uuid.NewString()+"/reservations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.rental.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_ApproveReservation(t *testing.T) {
	companyID := uuid.New()
	vehicleID := uuid.New()
	reservationID := uuid.New()

	tests := []struct {
		name           string
		mockReturn     *database.Reservation
		mockError      error
		expectedStatus int
	}{
		{
			name: "approved",
			mockReturn: &database.Reservation{
				ID:        reservationID,
				VehicleID: vehicleID,
				Status:    database.ReservationStatusApproved,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "conflicting approved reservation",
			mockError:      database.ErrConflict,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "reservation not found",
			mockError:      database.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "vehicle of another company",
			mockError:      service.ErrNotOwner,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.rental.On("ApproveReservation", mock.Anything, companyID, vehicleID, reservationID).Return(tt.mockReturn, tt.mockError)

			url := "/api/vehicles/" + vehicleID.String() + "/reservations/" + reservationID.String() + "/approve"
			req := httptest.NewRequest(http.MethodPut, url, nil)
			req.Header.Set("Authorization", bearer(t, companyID, database.RoleCompany))
			rec := httptest.NewRecorder()

			env.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			env.rental.AssertExpectations(t)
		})
	}
}

func TestHandler_RejectReservation(t *testing.T) {
	companyID := uuid.New()
	vehicleID := uuid.New()
	reservationID := uuid.New()

	env := newTestEnv()
	env.rental.On("RejectReservation", mock.Anything, companyID, vehicleID, reservationID).Return(&database.Reservation{
		ID:        reservationID,
		VehicleID: vehicleID,
		Status:    database.ReservationStatusRejected,
	}, nil)

	url := "/api/vehicles/" + vehicleID.String() + "/reservations/" + reservationID.String() + "/reject"
	req := httptest.NewRequest(http.MethodPut, url, nil)
	req.Header.Set("Authorization", bearer(t, companyID, database.RoleCompany))
	rec := httptest.NewRecorder()

	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp database.Reservation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, database.ReservationStatusRejected, resp.Status)
	env.rental.AssertExpectations(t)
}

func TestHandler_DeleteReservation(t *testing.T) {
	userID := uuid.New()
	vehicleID := uuid.New()
	reservationID := uuid.New()

	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "removed",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			mockError:      database.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "someone else's reservation",
			mockError:      service.ErrNotOwner,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.rental.On("RemoveReservation", mock.Anything, userID, vehicleID, reservationID).Return(tt.mockError)

			url := "/api/vehicles/" + vehicleID.String() + "/reservations/" + reservationID.String()
			req := httptest.NewRequest(http.MethodDelete, url, nil)
			req.Header.Set("Authorization", bearer(t, userID, database.RoleUser))
			rec := httptest.NewRecorder()

			env.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			env.rental.AssertExpectations(t)
		})
	}
}

func TestHandler_GetMyReservations(t *testing.T) {
	userID := uuid.New()

	env := newTestEnv()
	env.rental.On("ReservationsByUser", mock.Anything, userID).Return([]database.Reservation{
		{ID: uuid.New(), UserID: userID, Status: database.ReservationStatusPending},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/reservations/mine", nil)
	req.Header.Set("Authorization", bearer(t, userID, database.RoleUser))
	rec := httptest.NewRecorder()

	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.rental.AssertExpectations(t)
}

func TestHandler_SendMessage(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()

	env := newTestEnv()
	env.chat.On("SendMessage", mock.Anything, senderID, receiverID, "Is the Clio free this weekend?").Return(&database.Message{
		ID:       uuid.New(),
		SenderID: senderID,
		Body:     "Is the Clio free this weekend?",
	}, nil)

	body, _ := json.Marshal(sendMessageRequest{ReceiverID: receiverID, Body: "Is the Clio free this weekend?"})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, senderID, database.RoleUser))
	rec := httptest.NewRecorder()

	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	env.chat.AssertExpectations(t)
}
