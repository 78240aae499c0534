package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `id, vehicle_id, user_id, status, start_date, end_date, created_at`

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	err := row.Scan(
		&res.ID, &res.VehicleID, &res.UserID, &res.Status,
		&res.StartDate, &res.EndDate, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	return &res, nil
}

// CreateReservation inserts a new pending reservation
func (r *Repository) CreateReservation(ctx context.Context, res *Reservation) error {
	query := `
		INSERT INTO reservations (id, vehicle_id, user_id, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.Status == "" {
		res.Status = ReservationStatusPending
	}

	err := r.pool.QueryRow(ctx, query,
		res.ID, res.VehicleID, res.UserID, res.Status, res.StartDate, res.EndDate,
	).Scan(&res.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

// HasApprovedOverlap reports whether an approved reservation on the vehicle
// overlaps the half-open interval [start, end).
func (r *Repository) HasApprovedOverlap(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (bool, error) {
	var overlaps bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE vehicle_id = $1 AND status = 'approved'
			  AND start_date < $3 AND $2 < end_date
		)
	`, vehicleID, start, end).Scan(&overlaps)
	if err != nil {
		return false, fmt.Errorf("failed to check overlap: %w", err)
	}
	return overlaps, nil
}

// GetReservation returns a reservation scoped to its vehicle
func (r *Repository) GetReservation(ctx context.Context, vehicleID, reservationID uuid.UUID) (*Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 AND vehicle_id = $2`
	return scanReservation(r.pool.QueryRow(ctx, query, reservationID, vehicleID))
}

// ApproveReservation promotes a pending reservation to approved in a single
// conditional update: the write succeeds only while the row is still pending
// and no approved reservation on the same vehicle overlaps its interval.
// Concurrent approvals of overlapping requests therefore cannot both win.
//
// Returns the resulting row and whether this call performed the transition.
// A reservation that is already approved is returned unchanged with
// transitioned == false. A pending reservation the guard refuses yields
// ErrConflict; a rejected one can never be re-opened and also yields
// ErrConflict.
func (r *Repository) ApproveReservation(ctx context.Context, vehicleID, reservationID uuid.UUID) (*Reservation, bool, error) {
	query := `
		UPDATE reservations
		SET status = 'approved'
		WHERE id = $1 AND vehicle_id = $2 AND status = 'pending'
		  AND NOT EXISTS (
			SELECT 1 FROM reservations o
			WHERE o.vehicle_id = $2 AND o.status = 'approved'
			  AND o.start_date < reservations.end_date
			  AND reservations.start_date < o.end_date
		  )
		RETURNING ` + reservationColumns + `
	`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, reservationID, vehicleID))
	if err == nil {
		return res, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	// The guard fired zero rows: missing, already terminal, or conflicting.
	res, err = r.GetReservation(ctx, vehicleID, reservationID)
	if err != nil {
		return nil, false, err
	}
	if res.Status == ReservationStatusApproved {
		return res, false, nil
	}
	return nil, false, ErrConflict
}

// RejectReservation moves a pending reservation to rejected
func (r *Repository) RejectReservation(ctx context.Context, vehicleID, reservationID uuid.UUID) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'rejected'
		WHERE id = $1 AND vehicle_id = $2 AND status = 'pending'
		RETURNING ` + reservationColumns + `
	`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, reservationID, vehicleID))
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	res, err = r.GetReservation(ctx, vehicleID, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status == ReservationStatusRejected {
		return res, nil
	}
	return nil, ErrConflict
}

// DeleteReservation removes a reservation in any status
func (r *Repository) DeleteReservation(ctx context.Context, vehicleID, reservationID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM reservations WHERE id = $1 AND vehicle_id = $2
	`, reservationID, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetReservationsByUser returns every reservation requested by a user,
// across all vehicles and statuses
func (r *Repository) GetReservationsByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryReservations(ctx, query, userID)
}

// GetReservationsByVehicle returns a vehicle's reservations in creation order
func (r *Repository) GetReservationsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE vehicle_id = $1 ORDER BY created_at ASC`
	return r.queryReservations(ctx, query, vehicleID)
}

// GetAllReservations returns every reservation, newest first
func (r *Repository) GetAllReservations(ctx context.Context) ([]Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC`
	return r.queryReservations(ctx, query)
}

func (r *Repository) queryReservations(ctx context.Context, query string, args ...any) ([]Reservation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []Reservation
	for rows.Next() {
		var res Reservation
		err := rows.Scan(
			&res.ID, &res.VehicleID, &res.UserID, &res.Status,
			&res.StartDate, &res.EndDate, &res.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

// RecomputeVehicleHint rebuilds the denormalized vehicle status from the
// approved reservation set at the given instant. A vehicle marked broken
// keeps that status until the company clears it.
func (r *Repository) RecomputeVehicleHint(ctx context.Context, vehicleID uuid.UUID, now time.Time) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE vehicles v
		SET status = CASE
			WHEN v.status = 'broken' THEN 'broken'
			WHEN EXISTS (
				SELECT 1 FROM reservations res
				WHERE res.vehicle_id = v.id AND res.status = 'approved'
				  AND res.start_date <= $2 AND $2 < res.end_date
			) THEN 'booked'
			ELSE 'available'
		END,
		updated_at = NOW()
		WHERE v.id = $1
	`, vehicleID, now)
	if err != nil {
		return fmt.Errorf("failed to recompute vehicle status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
