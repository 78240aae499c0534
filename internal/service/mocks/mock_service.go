package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/service"
)

// MockRentalService is a mock implementation of RentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CreateVehicle(ctx context.Context, in service.CreateVehicleInput) (*database.Vehicle, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Vehicle), args.Error(1)
}

func (m *MockRentalService) GetVehicles(ctx context.Context) ([]database.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Vehicle), args.Error(1)
}

func (m *MockRentalService) GetVehicle(ctx context.Context, id uuid.UUID) (*database.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Vehicle), args.Error(1)
}

func (m *MockRentalService) GetCompanyVehicles(ctx context.Context, companyID uuid.UUID) ([]database.Vehicle, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Vehicle), args.Error(1)
}

func (m *MockRentalService) UpdateVehicle(ctx context.Context, companyID, vehicleID uuid.UUID, in service.UpdateVehicleInput) (*database.Vehicle, error) {
	args := m.Called(ctx, companyID, vehicleID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Vehicle), args.Error(1)
}

func (m *MockRentalService) SetVehicleCondition(ctx context.Context, companyID, vehicleID uuid.UUID, status database.VehicleStatus) error {
	args := m.Called(ctx, companyID, vehicleID, status)
	return args.Error(0)
}

func (m *MockRentalService) DeleteVehicle(ctx context.Context, companyID, vehicleID uuid.UUID) error {
	args := m.Called(ctx, companyID, vehicleID)
	return args.Error(0)
}

func (m *MockRentalService) CreateReservation(ctx context.Context, vehicleID, requesterID uuid.UUID, start, end time.Time) (*database.Reservation, error) {
	args := m.Called(ctx, vehicleID, requesterID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Reservation), args.Error(1)
}

func (m *MockRentalService) ApproveReservation(ctx context.Context, companyID, vehicleID, reservationID uuid.UUID) (*database.Reservation, error) {
	args := m.Called(ctx, companyID, vehicleID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Reservation), args.Error(1)
}

func (m *MockRentalService) RejectReservation(ctx context.Context, companyID, vehicleID, reservationID uuid.UUID) (*database.Reservation, error) {
	args := m.Called(ctx, companyID, vehicleID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Reservation), args.Error(1)
}

func (m *MockRentalService) RemoveReservation(ctx context.Context, actorID, vehicleID, reservationID uuid.UUID) error {
	args := m.Called(ctx, actorID, vehicleID, reservationID)
	return args.Error(0)
}

func (m *MockRentalService) VehicleReservations(ctx context.Context, companyID, vehicleID uuid.UUID) ([]database.Reservation, error) {
	args := m.Called(ctx, companyID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Reservation), args.Error(1)
}

func (m *MockRentalService) ReservationsByUser(ctx context.Context, userID uuid.UUID) ([]database.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Reservation), args.Error(1)
}

func (m *MockRentalService) AllReservations(ctx context.Context) ([]database.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Reservation), args.Error(1)
}

func (m *MockRentalService) Statistics(ctx context.Context) (*database.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Statistics), args.Error(1)
}

func (m *MockRentalService) CompanyStatistics(ctx context.Context, companyID uuid.UUID) (*database.Statistics, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Statistics), args.Error(1)
}

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in service.RegisterInput) (*database.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.User), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (string, *database.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*database.User), args.Error(2)
}

func (m *MockAccountService) GetUsers(ctx context.Context) ([]database.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.User), args.Error(1)
}

func (m *MockAccountService) GetUser(ctx context.Context, id uuid.UUID) (*database.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.User), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, id uuid.UUID, upd database.UserProfileUpdate) (*database.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.User), args.Error(1)
}

func (m *MockAccountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChatService is a mock implementation of ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, body string) (*database.Message, error) {
	args := m.Called(ctx, senderID, receiverID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Message), args.Error(1)
}

func (m *MockChatService) GetConversation(ctx context.Context, a, b uuid.UUID) (*database.Conversation, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Conversation), args.Error(1)
}

// MockNotifier is a mock implementation of notify.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, userID uuid.UUID, message string) {
	m.Called(ctx, userID, message)
}
