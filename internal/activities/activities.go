package activities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/locauto/locauto-backend/internal/database"
)

// VehicleSettler is the repository slice the worker needs.
// *database.Repository satisfies it.
type VehicleSettler interface {
	RecomputeVehicleHint(ctx context.Context, vehicleID uuid.UUID, now time.Time) error
}

// Activities holds worker activity implementations
type Activities struct {
	store VehicleSettler
}

// NewActivities creates the activity set
func NewActivities(store VehicleSettler) *Activities {
	return &Activities{store: store}
}

// SettleExpiredReservationInput identifies the reservation whose end has
// passed and the vehicle to settle.
type SettleExpiredReservationInput struct {
	ReservationID string `json:"reservationId"`
	VehicleID     string `json:"vehicleId"`
}

// SettleExpiredReservation rebuilds the vehicle availability hint once a
// reservation's interval has lapsed. A vehicle deleted in the meantime is
// treated as settled.
func (a *Activities) SettleExpiredReservation(ctx context.Context, input SettleExpiredReservationInput) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Settling expired reservation",
		"reservationId", input.ReservationID, "vehicleId", input.VehicleID)

	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return fmt.Errorf("invalid vehicle id %q: %w", input.VehicleID, err)
	}

	err = a.store.RecomputeVehicleHint(ctx, vehicleID, time.Now().UTC())
	if errors.Is(err, database.ErrNotFound) {
		logger.Info("Vehicle already removed", "vehicleId", input.VehicleID)
		return nil
	}
	return err
}
