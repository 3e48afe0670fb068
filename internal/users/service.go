package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"social-platform/internal/rbac"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password, so
// login responses never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidRegistration covers malformed signup input.
var ErrInvalidRegistration = errors.New("invalid registration")

const minPasswordLength = 8

// Service owns credential verification. Token issuance lives in internal/auth;
// this service only answers "who is this, and did they prove it".
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register provisions an account with the default role. The email is
// lowercased so lookups are case-insensitive; a duplicate surfaces as
// ErrEmailTaken from the repository.
func (s *Service) Register(ctx context.Context, email, displayName, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)

	switch {
	case email == "" || !strings.Contains(email, "@"):
		return User{}, fmt.Errorf("%w: email is malformed", ErrInvalidRegistration)
	case displayName == "":
		return User{}, fmt.Errorf("%w: display name is required", ErrInvalidRegistration)
	case len(password) < minPasswordLength:
		return User{}, fmt.Errorf("%w: password is too short", ErrInvalidRegistration)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u, rbac.RoleUser); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate verifies email+password and returns the account. Restricted
// accounts may authenticate; their permissions gate what they can do.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns the account by id. A missing user here is a per-request data
// problem, not a credential failure.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// HashPassword produces a bcrypt hash for account provisioning.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
