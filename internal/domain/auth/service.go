// Package auth implements customer and admin authentication plus profile
// management. Customers authenticate by phone (no password); admins use
// email and a bcrypt-hashed password.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mealdash/mealdash/pkg/auth"
)

var (
	// ErrUserNotFound is returned when no account matches the identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when the email or phone is already taken.
	ErrDuplicateUser = errors.New("email or phone already registered")
	// ErrInvalidCredentials is returned on a failed admin login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is an account record. PasswordHash never leaves this package.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterInput holds the fields for customer signup.
type RegisterInput struct {
	Name  string
	Email string
	Phone string
}

// UpdateProfileInput holds the mutable profile fields. Empty fields are
// left unchanged.
type UpdateProfileInput struct {
	Name  string
	Email string
}

// Session is an authenticated user plus their bearer token.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Service provides authentication backed by SQLite.
type Service struct {
	db *sql.DB
}

// NewService creates an auth Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

const userColumns = "id, name, email, phone, role, created_at, updated_at"

// Register creates a customer account and returns a session. Phone and
// email must be unique.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)
	if name == "" || email == "" || phone == "" {
		return nil, fmt.Errorf("name, email and phone are required")
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user (id, name, email, phone, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, email, phone, auth.RoleCustomer, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	return s.sessionFor(ctx, id)
}

// Login authenticates a customer by phone number.
func (s *Service) Login(ctx context.Context, phone string) (*Session, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("phone is required")
	}

	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM user WHERE phone = ?", phone).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return s.sessionFor(ctx, id)
}

// AdminLogin authenticates an admin by email and password. Lookup misses
// and bad passwords return the same error.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	var (
		id   string
		hash sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, password_hash FROM user WHERE email = ? AND role = ?", email, auth.RoleAdmin,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("admin login: %w", err)
	}
	if !hash.Valid || !auth.VerifyPassword(hash.String, password) {
		return nil, ErrInvalidCredentials
	}
	return s.sessionFor(ctx, id)
}

// CreateAdmin provisions an admin account with a hashed password. Used by
// seeding, not exposed over HTTP.
func (s *Service) CreateAdmin(ctx context.Context, name, email, phone, password string) (*User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user (id, name, email, phone, role, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, strings.ToLower(email), phone, auth.RoleAdmin, hash, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return s.Get(ctx, id)
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile updates a user's name and/or email.
func (s *Service) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = u.Name
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		email = u.Email
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		"UPDATE user SET name = ?, email = ?, updated_at = ? WHERE id = ?", name, email, now, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) sessionFor(ctx context.Context, id string) (*Session, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	token, err := auth.GenerateJWT(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: *u, Token: token}, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var (
		u         User
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &u, nil
}

// isUniqueViolation detects SQLite unique-constraint failures without
// depending on driver error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
