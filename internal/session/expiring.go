package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"auth-api/internal/auth"
	"auth-api/internal/user"
)

// Expiring adds a time-to-live on top of the base Lifecycle. A record is
// expired iff now > created_at + ttl; ttl <= 0 means never expires.
// Expiry is lazy: an expired record behaves as absent on resolve but is
// not purged there.
type Expiring struct {
	*Lifecycle
	ttl time.Duration
}

func NewExpiring(store Store, users user.Store, cookieName string, ttl time.Duration) *Expiring {
	return &Expiring{
		Lifecycle: New(store, users, cookieName),
		ttl:       ttl,
	}
}

func (e *Expiring) Name() string { return "session_exp" }

func (e *Expiring) ResolveUserID(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", auth.ErrSessionNotFound
	}

	rec, ok, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("session: store get: %w", err)
	}
	if !ok {
		return "", auth.ErrSessionNotFound
	}

	if e.expired(rec) {
		return "", auth.ErrSessionExpired
	}

	return rec.UserID, nil
}

func (e *Expiring) CurrentPrincipal(ctx context.Context, r *http.Request) (*user.User, error) {
	return e.principal(ctx, r, e.ResolveUserID)
}

func (e *Expiring) expired(rec Record) bool {
	if e.ttl <= 0 {
		return false
	}
	return e.now().After(rec.CreatedAt.Add(e.ttl))
}
