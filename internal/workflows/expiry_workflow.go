package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/locauto/locauto-backend/internal/activities"
)

// ReservationExpiryInput is the input for the reservation expiry workflow
type ReservationExpiryInput struct {
	ReservationID string    `json:"reservationId"`
	VehicleID     string    `json:"vehicleId"`
	EndDate       time.Time `json:"endDate"`
}

// ReservationExpiryWorkflow sleeps until a reservation's end and then
// rebuilds the vehicle's availability hint from the live reservation set.
// Being a workflow rather than an in-process timer, it survives restarts
// of both the API server and the worker. Conflict decisions never read the
// hint, so a late settle can only leave the hint stale, never wrong.
func ReservationExpiryWorkflow(ctx workflow.Context, input ReservationExpiryInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Reservation expiry scheduled",
		"reservationId", input.ReservationID, "endDate", input.EndDate)

	if until := input.EndDate.Sub(workflow.Now(ctx)); until > 0 {
		if err := workflow.Sleep(ctx, until); err != nil {
			return err
		}
	}

	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	err := workflow.ExecuteActivity(ctx, "SettleExpiredReservation", activities.SettleExpiredReservationInput{
		ReservationID: input.ReservationID,
		VehicleID:     input.VehicleID,
	}).Get(ctx, nil)
	if err != nil {
		logger.Error("Failed to settle expired reservation",
			"reservationId", input.ReservationID, "error", err)
		return err
	}

	logger.Info("Reservation lapsed", "reservationId", input.ReservationID)
	return nil
}
