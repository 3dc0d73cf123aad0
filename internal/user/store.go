package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the user does not exist.
var ErrNotFound = errors.New("user: not found")

// ErrDuplicateUsername indicates the username is already taken.
var ErrDuplicateUsername = errors.New("user: username already exists")

// User is the stored account record. PasswordHash never leaves the package.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store persists user accounts.
type Store interface {
	List(ctx context.Context) ([]User, error)
	ByID(ctx context.Context, id string) (User, error)
	ByUsername(ctx context.Context, username string) (User, error)
	Insert(ctx context.Context, username, passwordHash, role string) (User, error)
	UpdateProfile(ctx context.Context, id, username, role string) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// PGStore backs the user store with the users table.
type PGStore struct {
	Pool *pgxpool.Pool
}

const userColumns = `id, username, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// List returns all accounts ordered by username.
func (s PGStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ByID loads a single account.
func (s PGStore) ByID(ctx context.Context, id string) (User, error) {
	return scanUser(s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// ByUsername loads an account by its unique username.
func (s PGStore) ByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// Insert creates a new account.
func (s PGStore) Insert(ctx context.Context, username, passwordHash, role string) (User, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		username, passwordHash, role)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicateUsername
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes username and role, leaving the password untouched.
func (s PGStore) UpdateProfile(ctx context.Context, id, username, role string) (User, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE users SET username = $2, role = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, username, role)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return User{}, ErrDuplicateUsername
		}
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// UpdatePassword replaces the stored hash.
func (s PGStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account.
func (s PGStore) Delete(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
