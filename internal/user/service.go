package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownEmail       = errors.New("user: no user found for this email")
	ErrInvalidCredentials = errors.New("user: invalid credentials")
	ErrInvalidResetToken  = errors.New("user: invalid reset token")
)

// Service owns every credential mutation. The auth strategies only read
// users through the Store; password writes go through here.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Store() Store {
	return s.store
}

// Register creates a user with a hashed password. A duplicate email is
// surfaced as ErrAlreadyRegistered so the route layer can answer 400.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("user: hash failed: %w", err)
	}

	return s.store.Create(ctx, email, hash)
}

// Authenticate resolves a user by email and verifies the password.
// The unknown-email and wrong-password failures stay distinct because
// the login route maps them to different status codes.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	users, err := s.store.FindBy(ctx, Predicate{Email: email})
	if err != nil {
		return User{}, fmt.Errorf("user: lookup failed: %w", err)
	}
	if len(users) == 0 {
		return User{}, ErrUnknownEmail
	}

	for _, u := range users {
		if VerifyPassword(u.PasswordHash, password) {
			return u, nil
		}
	}

	return User{}, ErrInvalidCredentials
}

// ResetPasswordToken issues a single-use token for a registered email.
func (s *Service) ResetPasswordToken(ctx context.Context, email string) (string, error) {
	users, err := s.store.FindBy(ctx, Predicate{Email: email})
	if err != nil {
		return "", fmt.Errorf("user: lookup failed: %w", err)
	}
	if len(users) == 0 {
		return "", ErrUnknownEmail
	}

	token := uuid.NewString()
	if err := s.store.Update(ctx, users[0].ID, Fields{ResetToken: &token}); err != nil {
		return "", fmt.Errorf("user: store reset token: %w", err)
	}

	return token, nil
}

// UpdatePassword consumes a reset token and replaces the password.
func (s *Service) UpdatePassword(ctx context.Context, resetToken, password string) error {
	if resetToken == "" {
		return ErrInvalidResetToken
	}

	users, err := s.store.FindBy(ctx, Predicate{ResetToken: resetToken})
	if err != nil {
		return fmt.Errorf("user: lookup failed: %w", err)
	}
	if len(users) == 0 {
		return ErrInvalidResetToken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("user: hash failed: %w", err)
	}

	cleared := ""
	return s.store.Update(ctx, users[0].ID, Fields{
		PasswordHash: &hash,
		ResetToken:   &cleared,
	})
}
