package service

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/workflows"
)

const (
	// TaskQueue is shared by the API server and the worker.
	TaskQueue = "locauto-rental-queue"
)

// TemporalExpiryScheduler starts the durable expiry workflow for an
// approved reservation. Workflow IDs are derived from the reservation ID,
// so re-approval attempts cannot start a second timer.
type TemporalExpiryScheduler struct {
	client client.Client
}

// NewTemporalExpiryScheduler wraps a Temporal client.
func NewTemporalExpiryScheduler(c client.Client) *TemporalExpiryScheduler {
	return &TemporalExpiryScheduler{client: c}
}

// Schedule implements ExpiryScheduler.
func (t *TemporalExpiryScheduler) Schedule(ctx context.Context, res *database.Reservation) error {
	opts := client.StartWorkflowOptions{
		ID:        "reservation-expiry-" + res.ID.String(),
		TaskQueue: TaskQueue,
	}

	input := workflows.ReservationExpiryInput{
		ReservationID: res.ID.String(),
		VehicleID:     res.VehicleID.String(),
		EndDate:       res.EndDate,
	}

	_, err := t.client.ExecuteWorkflow(ctx, opts, "ReservationExpiryWorkflow", input)
	if err != nil {
		return fmt.Errorf("failed to start expiry workflow: %w", err)
	}
	return nil
}
