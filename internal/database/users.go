package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, name, email, password_hash, role, ice, push_token,
	avatar_url, latitude, longitude, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ICE,
		&u.PushToken, &u.AvatarURL, &u.Latitude, &u.Longitude, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new account. A duplicate email maps to ErrEmailTaken.
func (r *Repository) CreateUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, ice, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.ICE, u.Latitude, u.Longitude,
	).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail returns the account registered under an email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserByID returns an account by ID
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetAllUsers returns every account
func (r *Repository) GetAllUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ICE,
			&u.PushToken, &u.AvatarURL, &u.Latitude, &u.Longitude, &u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// UserProfileUpdate carries the mutable profile fields. Nil means unchanged.
type UserProfileUpdate struct {
	Name      *string
	PushToken *string
	AvatarURL *string
	Latitude  *float64
	Longitude *float64
}

// UpdateUser applies a partial profile update and returns the new row
func (r *Repository) UpdateUser(ctx context.Context, id uuid.UUID, upd UserProfileUpdate) (*User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    push_token = COALESCE($3, push_token),
		    avatar_url = COALESCE($4, avatar_url),
		    latitude = COALESCE($5, latitude),
		    longitude = COALESCE($6, longitude)
		WHERE id = $1
		RETURNING ` + userColumns + `
	`
	return scanUser(r.pool.QueryRow(ctx, query,
		id, upd.Name, upd.PushToken, upd.AvatarURL, upd.Latitude, upd.Longitude,
	))
}

// DeleteUser removes an account
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
