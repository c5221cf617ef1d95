package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"auth-api/internal/auth"
	"auth-api/internal/records"
	"auth-api/internal/user"
)

// Persistent externalizes sessions to a durable record store so they
// survive process restarts. The in-memory store from Expiring stays
// populated as a cache for fast TTL checks; the durable store is the
// source of truth for existence.
type Persistent struct {
	*Expiring
	records records.Store
}

func NewPersistent(exp *Expiring, recs records.Store) *Persistent {
	return &Persistent{
		Expiring: exp,
		records:  recs,
	}
}

func (p *Persistent) Name() string { return "session_db" }

// CreateSession issues a session id, caches the record in memory and
// writes the durable record. A failed durable write rolls the cache
// entry back: a session id is never handed out on an ambiguous write.
func (p *Persistent) CreateSession(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", auth.ErrInvalidUserID
	}

	sessionID, err := GenerateID()
	if err != nil {
		return "", err
	}

	rec := Record{UserID: userID, CreatedAt: p.now()}
	if err := p.store.Put(ctx, sessionID, rec); err != nil {
		return "", fmt.Errorf("session: store put: %w", err)
	}

	err = p.records.Save(ctx, records.SessionRecord{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: rec.CreatedAt,
	})
	if err != nil {
		_, _ = p.store.Delete(ctx, sessionID)
		return "", fmt.Errorf("session: save durable record: %w", err)
	}

	return sessionID, nil
}

// ResolveUserID validates the TTL through the cache, then confirms the
// durable record. A cache miss falls back to the durable store and
// re-populates the cache, so sessions survive a restart.
func (p *Persistent) ResolveUserID(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", auth.ErrSessionNotFound
	}

	_, err := p.Expiring.ResolveUserID(ctx, sessionID)

	switch {
	case err == nil:
		rec, ferr := p.findRecord(ctx, sessionID)
		if ferr != nil {
			return "", ferr
		}
		if rec == nil {
			// stale cache entry, the durable record is gone
			_, _ = p.store.Delete(ctx, sessionID)
			return "", auth.ErrSessionNotFound
		}
		return rec.UserID, nil

	case errors.Is(err, auth.ErrSessionNotFound):
		rec, ferr := p.findRecord(ctx, sessionID)
		if ferr != nil {
			return "", ferr
		}
		if rec == nil {
			return "", auth.ErrSessionNotFound
		}
		cached := Record{UserID: rec.UserID, CreatedAt: rec.CreatedAt}
		if p.expired(cached) {
			return "", auth.ErrSessionExpired
		}
		// reconcile the cache with the durable store
		if perr := p.store.Put(ctx, sessionID, cached); perr != nil {
			return "", fmt.Errorf("session: store put: %w", perr)
		}
		return rec.UserID, nil

	default:
		return "", err
	}
}

func (p *Persistent) CurrentPrincipal(ctx context.Context, r *http.Request) (*user.User, error) {
	return p.principal(ctx, r, p.ResolveUserID)
}

// DestroySession removes both the durable record and the cache entry.
// A backend failure yields false plus the error, never a partial true.
// The outcome comes from the atomic Remove, not the preceding Search:
// of two concurrent destroys on the same id only one observes true.
func (p *Persistent) DestroySession(ctx context.Context, r *http.Request) (bool, error) {
	sessionID, ok := p.SessionCookie(r)
	if !ok {
		return false, nil
	}

	recs, err := p.records.Search(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("session: search durable record: %w", err)
	}
	if len(recs) == 0 {
		return false, nil
	}

	removed, err := p.records.Remove(ctx, recs[0])
	if err != nil {
		return false, fmt.Errorf("session: remove durable record: %w", err)
	}

	_, _ = p.store.Delete(ctx, sessionID)
	return removed, nil
}

func (p *Persistent) findRecord(ctx context.Context, sessionID string) (*records.SessionRecord, error) {
	recs, err := p.records.Search(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session: search durable record: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}
