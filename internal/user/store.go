package user

import (
	"context"
	"errors"
)

var (
	ErrAlreadyRegistered = errors.New("user: email already registered")
	ErrNotFound          = errors.New("user: not found")
)

// Predicate narrows a FindBy lookup. Zero-valued fields are ignored;
// set fields are combined with AND.
type Predicate struct {
	ID         string
	Email      string
	SessionID  string
	ResetToken string
}

// Fields carries a partial update. Nil members are left untouched.
type Fields struct {
	PasswordHash *string
	SessionID    *string
	ResetToken   *string
}

// Store is the external user collaborator. Implementations must be safe
// for concurrent use.
type Store interface {
	Create(ctx context.Context, email, passwordHash string) (User, error)
	FindBy(ctx context.Context, p Predicate) ([]User, error)
	Update(ctx context.Context, userID string, f Fields) error
}
