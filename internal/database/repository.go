package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflicting approved reservation")
	ErrEmailTaken = errors.New("email already registered")
)

// Repository handles all database operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Connect opens a pgx pool and verifies the connection.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// --- Vehicle Operations ---

const vehicleColumns = `id, company_id, make, model, year, color, mileage,
	price_per_day, status, images, created_at, updated_at`

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	err := row.Scan(
		&v.ID, &v.CompanyID, &v.Make, &v.Model, &v.Year, &v.Color,
		&v.Mileage, &v.PricePerDay, &v.Status, &v.Images,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}
	return &v, nil
}

// CreateVehicle inserts a new vehicle listing
func (r *Repository) CreateVehicle(ctx context.Context, v *Vehicle) error {
	query := `
		INSERT INTO vehicles (id, company_id, make, model, year, color, mileage, price_per_day, status, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Status == "" {
		v.Status = VehicleStatusAvailable
	}

	err := r.pool.QueryRow(ctx, query,
		v.ID, v.CompanyID, v.Make, v.Model, v.Year, v.Color,
		v.Mileage, v.PricePerDay, v.Status, v.Images,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// GetVehicleByID returns a vehicle by ID
func (r *Repository) GetVehicleByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.pool.QueryRow(ctx, query, id))
}

// GetAllVehicles returns every listed vehicle, newest first
func (r *Repository) GetAllVehicles(ctx context.Context) ([]Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query)
}

// GetVehiclesByCompany returns the vehicles owned by a company
func (r *Repository) GetVehiclesByCompany(ctx context.Context, companyID uuid.UUID) ([]Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE company_id = $1 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, companyID)
}

func (r *Repository) queryVehicles(ctx context.Context, query string, args ...any) ([]Vehicle, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		var v Vehicle
		err := rows.Scan(
			&v.ID, &v.CompanyID, &v.Make, &v.Model, &v.Year, &v.Color,
			&v.Mileage, &v.PricePerDay, &v.Status, &v.Images,
			&v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// UpdateVehicle replaces the descriptive attributes of a vehicle.
// The status hint and reservation set are not touched here.
func (r *Repository) UpdateVehicle(ctx context.Context, v *Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $2, model = $3, year = $4, color = $5, mileage = $6,
		    price_per_day = $7, images = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		v.ID, v.Make, v.Model, v.Year, v.Color, v.Mileage, v.PricePerDay, v.Images,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// SetVehicleStatus sets the condition/availability hint directly
// (company marking a car broken or repaired).
func (r *Repository) SetVehicleStatus(ctx context.Context, id uuid.UUID, status VehicleStatus) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to set vehicle status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVehicle removes a vehicle and, via FK cascade, its reservations
func (r *Repository) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Statistics ---

const statsSelect = `
	COUNT(*),
	COUNT(*) FILTER (WHERE r.status = 'pending'),
	COUNT(*) FILTER (WHERE r.status = 'approved'),
	COUNT(*) FILTER (WHERE r.status = 'rejected')
`

// GetStatistics aggregates counts over all vehicles and reservations
func (r *Repository) GetStatistics(ctx context.Context) (*Statistics, error) {
	var s Statistics
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM vehicles), `+statsSelect+`
		FROM reservations r
	`).Scan(
		&s.TotalVehicles, &s.TotalReservations,
		&s.PendingReservations, &s.ApprovedReservations, &s.RejectedReservations,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate statistics: %w", err)
	}
	return &s, nil
}

// GetCompanyStatistics aggregates counts over a single company's vehicles
func (r *Repository) GetCompanyStatistics(ctx context.Context, companyID uuid.UUID) (*Statistics, error) {
	var s Statistics
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM vehicles WHERE company_id = $1), `+statsSelect+`
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE v.company_id = $1
	`, companyID).Scan(
		&s.TotalVehicles, &s.TotalReservations,
		&s.PendingReservations, &s.ApprovedReservations, &s.RejectedReservations,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate company statistics: %w", err)
	}
	return &s, nil
}
