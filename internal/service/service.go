package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/notify"
)

// RentalStore is the slice of the repository the rental service consumes.
// *database.Repository satisfies it.
type RentalStore interface {
	CreateVehicle(ctx context.Context, v *database.Vehicle) error
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*database.Vehicle, error)
	GetAllVehicles(ctx context.Context) ([]database.Vehicle, error)
	GetVehiclesByCompany(ctx context.Context, companyID uuid.UUID) ([]database.Vehicle, error)
	UpdateVehicle(ctx context.Context, v *database.Vehicle) error
	SetVehicleStatus(ctx context.Context, id uuid.UUID, status database.VehicleStatus) error
	DeleteVehicle(ctx context.Context, id uuid.UUID) error

	CreateReservation(ctx context.Context, res *database.Reservation) error
	HasApprovedOverlap(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (bool, error)
	GetReservation(ctx context.Context, vehicleID, reservationID uuid.UUID) (*database.Reservation, error)
	ApproveReservation(ctx context.Context, vehicleID, reservationID uuid.UUID) (*database.Reservation, bool, error)
	RejectReservation(ctx context.Context, vehicleID, reservationID uuid.UUID) (*database.Reservation, error)
	DeleteReservation(ctx context.Context, vehicleID, reservationID uuid.UUID) error
	GetReservationsByUser(ctx context.Context, userID uuid.UUID) ([]database.Reservation, error)
	GetReservationsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]database.Reservation, error)
	GetAllReservations(ctx context.Context) ([]database.Reservation, error)
	RecomputeVehicleHint(ctx context.Context, vehicleID uuid.UUID, now time.Time) error

	GetStatistics(ctx context.Context) (*database.Statistics, error)
	GetCompanyStatistics(ctx context.Context, companyID uuid.UUID) (*database.Statistics, error)
}

// ExpiryScheduler schedules the durable lapse of an approved reservation.
type ExpiryScheduler interface {
	Schedule(ctx context.Context, res *database.Reservation) error
}

// RentalService defines the vehicle catalog and reservation lifecycle
type RentalService interface {
	CreateVehicle(ctx context.Context, in CreateVehicleInput) (*database.Vehicle, error)
	GetVehicles(ctx context.Context) ([]database.Vehicle, error)
	GetVehicle(ctx context.Context, id uuid.UUID) (*database.Vehicle, error)
	GetCompanyVehicles(ctx context.Context, companyID uuid.UUID) ([]database.Vehicle, error)
	UpdateVehicle(ctx context.Context, companyID, vehicleID uuid.UUID, in UpdateVehicleInput) (*database.Vehicle, error)
	SetVehicleCondition(ctx context.Context, companyID, vehicleID uuid.UUID, status database.VehicleStatus) error
	DeleteVehicle(ctx context.Context, companyID, vehicleID uuid.UUID) error

	CreateReservation(ctx context.Context, vehicleID, requesterID uuid.UUID, start, end time.Time) (*database.Reservation, error)
	ApproveReservation(ctx context.Context, companyID, vehicleID, reservationID uuid.UUID) (*database.Reservation, error)
	RejectReservation(ctx context.Context, companyID, vehicleID, reservationID uuid.UUID) (*database.Reservation, error)
	RemoveReservation(ctx context.Context, actorID, vehicleID, reservationID uuid.UUID) error
	VehicleReservations(ctx context.Context, companyID, vehicleID uuid.UUID) ([]database.Reservation, error)
	ReservationsByUser(ctx context.Context, userID uuid.UUID) ([]database.Reservation, error)
	AllReservations(ctx context.Context) ([]database.Reservation, error)

	Statistics(ctx context.Context) (*database.Statistics, error)
	CompanyStatistics(ctx context.Context, companyID uuid.UUID) (*database.Statistics, error)
}

// CreateVehicleInput carries a new listing's attributes.
type CreateVehicleInput struct {
	CompanyID   uuid.UUID
	Make        string
	Model       string
	Year        int
	Color       string
	Mileage     int
	PricePerDay float64
	Images      []string
}

// UpdateVehicleInput carries the mutable descriptive attributes.
type UpdateVehicleInput struct {
	Make        string
	Model       string
	Year        int
	Color       string
	Mileage     int
	PricePerDay float64
	Images      []string
}

type rentalService struct {
	store    RentalStore
	notifier notify.Notifier
	expiry   ExpiryScheduler
	log      *zap.Logger
}

// NewRentalService creates the rental service. The scheduler may be nil when
// no Temporal worker is deployed; approvals then leave the availability hint
// to the next recompute.
func NewRentalService(store RentalStore, notifier notify.Notifier, expiry ExpiryScheduler, log *zap.Logger) RentalService {
	return &rentalService{store: store, notifier: notifier, expiry: expiry, log: log}
}

// --- Vehicle catalog ---

func (s *rentalService) CreateVehicle(ctx context.Context, in CreateVehicleInput) (*database.Vehicle, error) {
	v := &database.Vehicle{
		ID:          uuid.New(),
		CompanyID:   in.CompanyID,
		Make:        in.Make,
		Model:       in.Model,
		Year:        in.Year,
		Color:       in.Color,
		Mileage:     in.Mileage,
		PricePerDay: in.PricePerDay,
		Status:      database.VehicleStatusAvailable,
		Images:      in.Images,
	}
	if err := s.store.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *rentalService) GetVehicles(ctx context.Context) ([]database.Vehicle, error) {
	return s.store.GetAllVehicles(ctx)
}

func (s *rentalService) GetVehicle(ctx context.Context, id uuid.UUID) (*database.Vehicle, error) {
	return s.store.GetVehicleByID(ctx, id)
}

func (s *rentalService) GetCompanyVehicles(ctx context.Context, companyID uuid.UUID) ([]database.Vehicle, error) {
	return s.store.GetVehiclesByCompany(ctx, companyID)
}

func (s *rentalService) UpdateVehicle(ctx context.Context, companyID, vehicleID uuid.UUID, in UpdateVehicleInput) (*database.Vehicle, error) {
	v, err := s.ownedVehicle(ctx, companyID, vehicleID)
	if err != nil {
		return nil, err
	}

	v.Make = in.Make
	v.Model = in.Model
	v.Year = in.Year
	v.Color = in.Color
	v.Mileage = in.Mileage
	v.PricePerDay = in.PricePerDay
	if in.Images != nil {
		v.Images = in.Images
	}

	if err := s.store.UpdateVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *rentalService) SetVehicleCondition(ctx context.Context, companyID, vehicleID uuid.UUID, status database.VehicleStatus) error {
	if _, err := s.ownedVehicle(ctx, companyID, vehicleID); err != nil {
		return err
	}
	if err := s.store.SetVehicleStatus(ctx, vehicleID, status); err != nil {
		return err
	}
	if status != database.VehicleStatusBroken {
		// Clearing "broken" re-derives booked/available from the live set.
		return s.store.RecomputeVehicleHint(ctx, vehicleID, time.Now().UTC())
	}
	return nil
}

func (s *rentalService) DeleteVehicle(ctx context.Context, companyID, vehicleID uuid.UUID) error {
	if _, err := s.ownedVehicle(ctx, companyID, vehicleID); err != nil {
		return err
	}
	return s.store.DeleteVehicle(ctx, vehicleID)
}

func (s *rentalService) ownedVehicle(ctx context.Context, companyID, vehicleID uuid.UUID) (*database.Vehicle, error) {
	v, err := s.store.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.CompanyID != companyID {
		return nil, ErrNotOwner
	}
	return v, nil
}

// --- Reservation lifecycle ---

func (s *rentalService) CreateReservation(ctx context.Context, vehicleID, requesterID uuid.UUID, start, end time.Time) (*database.Reservation, error) {
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	v, err := s.store.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.Status == database.VehicleStatusBroken {
		return nil, ErrVehicleUnavailable
	}

	overlaps, err := s.store.HasApprovedOverlap(ctx, vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, database.ErrConflict
	}

	res := &database.Reservation{
		ID:        uuid.New(),
		VehicleID: vehicleID,
		UserID:    requesterID,
		Status:    database.ReservationStatusPending,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.store.CreateReservation(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ApproveReservation promotes a pending reservation to approved. The
// conflict guard is evaluated atomically at write time inside the store, so
// two concurrent approvals of overlapping requests cannot both succeed. On
// transition the vehicle hint is recomputed, the durable expiry is
// scheduled, and the requester is notified once. Re-approving an approved
// reservation is a no-op with no side effects.
func (s *rentalService) ApproveReservation(ctx context.Context, companyID, vehicleID, reservationID uuid.UUID) (*database.Reservation, error) {
	if _, err := s.ownedVehicle(ctx, companyID, vehicleID); err != nil {
		return nil, err
	}

	res, transitioned, err := s.store.ApproveReservation(ctx, vehicleID, reservationID)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		return res, nil
	}

	if err := s.store.RecomputeVehicleHint(ctx, vehicleID, time.Now().UTC()); err != nil {
		s.log.Warn("vehicle hint recompute failed after approval",
			zap.String("vehicleId", vehicleID.String()), zap.Error(err))
	}

	if s.expiry != nil {
		if err := s.expiry.Schedule(ctx, res); err != nil {
			s.log.Warn("expiry schedule failed",
				zap.String("reservationId", res.ID.String()), zap.Error(err))
		}
	}

	// Best-effort; a failed delivery never rolls back the approval.
	s.notifier.Send(ctx, res.UserID, "Your reservation has been approved")

	return res, nil
}

// RejectReservation moves a pending reservation to rejected. The vehicle is
// untouched and the requester is not notified.
func (s *rentalService) RejectReservation(ctx context.Context, companyID, vehicleID, reservationID uuid.UUID) (*database.Reservation, error) {
	if _, err := s.ownedVehicle(ctx, companyID, vehicleID); err != nil {
		return nil, err
	}
	return s.store.RejectReservation(ctx, vehicleID, reservationID)
}

// RemoveReservation withdraws a reservation. The requester may remove their
// own; the listing company may remove any on its vehicle.
func (s *rentalService) RemoveReservation(ctx context.Context, actorID, vehicleID, reservationID uuid.UUID) error {
	res, err := s.store.GetReservation(ctx, vehicleID, reservationID)
	if err != nil {
		return err
	}
	if res.UserID != actorID {
		v, err := s.store.GetVehicleByID(ctx, vehicleID)
		if err != nil {
			return err
		}
		if v.CompanyID != actorID {
			return ErrNotOwner
		}
	}

	if err := s.store.DeleteReservation(ctx, vehicleID, reservationID); err != nil {
		return err
	}
	if err := s.store.RecomputeVehicleHint(ctx, vehicleID, time.Now().UTC()); err != nil {
		s.log.Warn("vehicle hint recompute failed after removal",
			zap.String("vehicleId", vehicleID.String()), zap.Error(err))
	}
	return nil
}

func (s *rentalService) VehicleReservations(ctx context.Context, companyID, vehicleID uuid.UUID) ([]database.Reservation, error) {
	if _, err := s.ownedVehicle(ctx, companyID, vehicleID); err != nil {
		return nil, err
	}
	return s.store.GetReservationsByVehicle(ctx, vehicleID)
}

func (s *rentalService) ReservationsByUser(ctx context.Context, userID uuid.UUID) ([]database.Reservation, error) {
	return s.store.GetReservationsByUser(ctx, userID)
}

func (s *rentalService) AllReservations(ctx context.Context) ([]database.Reservation, error) {
	return s.store.GetAllReservations(ctx)
}

// --- Statistics ---

func (s *rentalService) Statistics(ctx context.Context) (*database.Statistics, error) {
	return s.store.GetStatistics(ctx)
}

func (s *rentalService) CompanyStatistics(ctx context.Context, companyID uuid.UUID) (*database.Statistics, error) {
	return s.store.GetCompanyStatistics(ctx, companyID)
}
