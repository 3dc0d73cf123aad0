package user

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/smartdeal/backend-quote/internal/auth"
	"github.com/smartdeal/backend-quote/internal/common"
)

const (
	// RoleAdmin may edit pricing tables and manage accounts.
	RoleAdmin = "admin"
	// RoleUser may build quotes against the published tables.
	RoleUser = "user"

	minPasswordLength = 8
)

// View is the API-safe representation of an account.
type View struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input captures the payload for creating or updating an account.
type Input struct {
	Username string
	Password string
	Role     string
}

// Service manages the flat account list used for tool access.
type Service struct {
	store Store
}

// NewService constructs a user service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

func toView(u User) View {
	return View{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func normalizeRole(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", common.NewAppError("VALIDATION_ERROR", "role must be admin or user", http.StatusBadRequest, nil)
	}
}

// List returns every account without password material.
func (s *Service) List(ctx context.Context) ([]View, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(users))
	for _, u := range users {
		views = append(views, toView(u))
	}
	return views, nil
}

// Create registers a new account with a hashed password.
func (s *Service) Create(ctx context.Context, in Input) (View, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return View{}, common.NewAppError("VALIDATION_ERROR", "username is required", http.StatusBadRequest, nil)
	}
	if len(in.Password) < minPasswordLength {
		return View{}, common.NewAppError("VALIDATION_ERROR", "password must be at least 8 characters", http.StatusBadRequest, nil)
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return View{}, err
	}

	hash, err := argon2id.CreateHash(in.Password, argon2id.DefaultParams)
	if err != nil {
		return View{}, err
	}

	created, err := s.store.Insert(ctx, username, hash, role)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return View{}, common.NewAppError("USER_EXISTS", "user already exists", http.StatusBadRequest, nil)
		}
		return View{}, err
	}
	return toView(created), nil
}

// Update changes an account's username and role.
func (s *Service) Update(ctx context.Context, id string, in Input) (View, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return View{}, common.NewAppError("VALIDATION_ERROR", "username is required", http.StatusBadRequest, nil)
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return View{}, err
	}

	updated, err := s.store.UpdateProfile(ctx, id, username, role)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return View{}, common.NewAppError("NOT_FOUND", "user not found", http.StatusNotFound, nil)
		}
		if errors.Is(err, ErrDuplicateUsername) {
			return View{}, common.NewAppError("USER_EXISTS", "user already exists", http.StatusBadRequest, nil)
		}
		return View{}, err
	}
	return toView(updated), nil
}

// ChangePassword replaces an account's password.
func (s *Service) ChangePassword(ctx context.Context, id, password string) error {
	if len(password) < minPasswordLength {
		return common.NewAppError("VALIDATION_ERROR", "password must be at least 8 characters", http.StatusBadRequest, nil)
	}
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, ErrNotFound) {
			return common.NewAppError("NOT_FOUND", "user not found", http.StatusNotFound, nil)
		}
		return err
	}
	return nil
}

// Delete removes an account. The caller may not delete itself.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return common.NewAppError("VALIDATION_ERROR", "cannot delete the active account", http.StatusBadRequest, nil)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return common.NewAppError("NOT_FOUND", "user not found", http.StatusNotFound, nil)
		}
		return err
	}
	return nil
}

// AccountByUsername exposes credential data for the login flow.
func (s *Service) AccountByUsername(ctx context.Context, username string) (auth.Account, error) {
	u, err := s.store.ByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return auth.Account{}, err
	}
	return auth.Account{ID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash, Role: u.Role}, nil
}

// SessionUserByID resolves the safe user view for an authenticated session.
func (s *Service) SessionUserByID(ctx context.Context, id string) (auth.SessionUser, error) {
	u, err := s.store.ByID(ctx, id)
	if err != nil {
		return auth.SessionUser{}, err
	}
	return auth.SessionUser{ID: u.ID, Username: u.Username, Role: u.Role}, nil
}

// EnsureAdmin creates the bootstrap admin account when the table is empty.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.store.ByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return err
	}
	_, err = s.store.Insert(ctx, username, hash, RoleAdmin)
	if errors.Is(err, ErrDuplicateUsername) {
		return nil
	}
	return err
}
