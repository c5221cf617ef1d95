// Package session implements the session-identifier lifecycle: issuance,
// resolution, expiry and destruction, layered over a Store. The layers
// compose by delegation: Expiring wraps Lifecycle with a TTL, Persistent
// wraps Expiring with a durable record backend.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"auth-api/internal/auth"
	"auth-api/internal/user"
)

// Lifecycle is the base session authentication policy: unpredictable
// tokens in an in-process store, no expiry.
type Lifecycle struct {
	store      Store
	users      user.Store
	cookieName string
	now        func() time.Time
}

func New(store Store, users user.Store, cookieName string) *Lifecycle {
	return &Lifecycle{
		store:      store,
		users:      users,
		cookieName: cookieName,
		now:        time.Now,
	}
}

func (l *Lifecycle) Name() string { return "session" }

// SessionCookie reads the session id from the request cookie. An absent
// cookie is treated as an absent session id.
func (l *Lifecycle) SessionCookie(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(l.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (l *Lifecycle) Supports(r *http.Request) bool {
	_, ok := l.SessionCookie(r)
	return ok
}

// CreateSession issues a new session id for a user.
func (l *Lifecycle) CreateSession(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", auth.ErrInvalidUserID
	}

	sessionID, err := GenerateID()
	if err != nil {
		return "", err
	}

	rec := Record{UserID: userID, CreatedAt: l.now()}
	if err := l.store.Put(ctx, sessionID, rec); err != nil {
		return "", fmt.Errorf("session: store put: %w", err)
	}

	return sessionID, nil
}

// ResolveUserID maps a session id back to its user id.
func (l *Lifecycle) ResolveUserID(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", auth.ErrSessionNotFound
	}

	rec, ok, err := l.store.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("session: store get: %w", err)
	}
	if !ok {
		return "", auth.ErrSessionNotFound
	}

	return rec.UserID, nil
}

func (l *Lifecycle) CurrentPrincipal(ctx context.Context, r *http.Request) (*user.User, error) {
	return l.principal(ctx, r, l.ResolveUserID)
}

// DestroySession removes the session named by the request cookie.
// An absent request, absent cookie or unknown session id yields false
// without touching the store.
func (l *Lifecycle) DestroySession(ctx context.Context, r *http.Request) (bool, error) {
	sessionID, ok := l.SessionCookie(r)
	if !ok {
		return false, nil
	}

	removed, err := l.store.Delete(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("session: store delete: %w", err)
	}
	return removed, nil
}

// principal is the shared cookie-to-user path. The resolver is passed in
// so each wrapping lifecycle applies its own resolution rules.
func (l *Lifecycle) principal(
	ctx context.Context,
	r *http.Request,
	resolve func(context.Context, string) (string, error),
) (*user.User, error) {
	sessionID, ok := l.SessionCookie(r)
	if !ok {
		return nil, auth.ErrNoCredentials
	}

	userID, err := resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return l.loadUser(ctx, userID)
}

func (l *Lifecycle) loadUser(ctx context.Context, userID string) (*user.User, error) {
	users, err := l.users.FindBy(ctx, user.Predicate{ID: userID})
	if err != nil {
		return nil, fmt.Errorf("session: user lookup: %w", err)
	}
	if len(users) == 0 {
		return nil, auth.ErrSessionNotFound
	}
	return &users[0], nil
}
