package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/locauto/locauto-backend/internal/auth"
	"github.com/locauto/locauto-backend/internal/database"
)

// AccountStore is the slice of the repository the account service consumes.
type AccountStore interface {
	CreateUser(ctx context.Context, u *database.User) error
	GetUserByEmail(ctx context.Context, email string) (*database.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*database.User, error)
	GetAllUsers(ctx context.Context) ([]database.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, upd database.UserProfileUpdate) (*database.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// AccountService handles registration, login and profile CRUD.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*database.User, error)
	Login(ctx context.Context, email, password string) (string, *database.User, error)

	GetUsers(ctx context.Context) ([]database.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*database.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd database.UserProfileUpdate) (*database.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// RegisterInput carries a registration request. A non-empty ICE asks for a
// company account and must exist in the registry.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	ICE      string
}

type accountService struct {
	store    AccountStore
	registry *auth.CompanyRegistry
	secret   string
	tokenTTL time.Duration
}

// NewAccountService creates the account service.
func NewAccountService(store AccountStore, registry *auth.CompanyRegistry, secret string, tokenTTL time.Duration) AccountService {
	return &accountService{store: store, registry: registry, secret: secret, tokenTTL: tokenTTL}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*database.User, error) {
	u := &database.User{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(in.Name),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Role:  database.RoleUser,
	}

	if ice := strings.TrimSpace(in.ICE); ice != "" {
		entry, ok := s.registry.Lookup(ice)
		if !ok {
			return nil, ErrInvalidICE
		}
		u.Role = database.RoleCompany
		u.ICE = &entry.ICE
		u.Latitude = &entry.Latitude
		u.Longitude = &entry.Longitude
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (string, *database.User, error) {
	u, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.Issue(s.secret, u.ID, u.Role, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *accountService) GetUsers(ctx context.Context) ([]database.User, error) {
	return s.store.GetAllUsers(ctx)
}

func (s *accountService) GetUser(ctx context.Context, id uuid.UUID) (*database.User, error) {
	return s.store.GetUserByID(ctx, id)
}

func (s *accountService) UpdateProfile(ctx context.Context, id uuid.UUID, upd database.UserProfileUpdate) (*database.User, error) {
	return s.store.UpdateUser(ctx, id, upd)
}

func (s *accountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteUser(ctx, id)
}
