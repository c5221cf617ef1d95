package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a process-local user store. It backs tests and
// single-node deployments without a database.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User // keyed by user id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

func (m *MemoryStore) Create(ctx context.Context, email, passwordHash string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return User{}, ErrAlreadyRegistered
		}
	}

	now := time.Now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) FindBy(ctx context.Context, p Predicate) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []User
	for _, u := range m.users {
		if p.ID != "" && u.ID != p.ID {
			continue
		}
		if p.Email != "" && !strings.EqualFold(u.Email, p.Email) {
			continue
		}
		if p.SessionID != "" && u.SessionID != p.SessionID {
			continue
		}
		if p.ResetToken != "" && u.ResetToken != p.ResetToken {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *MemoryStore) Update(ctx context.Context, userID string, f Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}

	if f.PasswordHash != nil {
		u.PasswordHash = *f.PasswordHash
	}
	if f.SessionID != nil {
		u.SessionID = *f.SessionID
	}
	if f.ResetToken != nil {
		u.ResetToken = *f.ResetToken
	}
	u.UpdatedAt = time.Now()

	m.users[userID] = u
	return nil
}
