// Package records is the durable session-record collaborator: session
// representations that outlive the process, as opposed to the in-memory
// cache the lifecycles keep for fast TTL checks.
package records

import (
	"context"
	"time"
)

// SessionRecord is the durable shape of a session.
type SessionRecord struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists session records. Implementations provide their own
// consistency guarantees: a Save must be visible to a subsequent Search.
// Backend errors are returned as-is, callers decide how to surface them.
//
// Remove reports whether a record was actually deleted, and must do so
// atomically: of two concurrent Removes for the same id, exactly one
// observes true.
type Store interface {
	Save(ctx context.Context, rec SessionRecord) error
	Search(ctx context.Context, sessionID string) ([]SessionRecord, error)
	Remove(ctx context.Context, rec SessionRecord) (bool, error)
}
