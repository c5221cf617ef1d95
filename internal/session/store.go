package session

import (
	"context"
	"time"
)

// Record is the per-session metadata held by a Store.
type Record struct {
	UserID    string
	CreatedAt time.Time
}

// Store maps session ids to records. It is the substrate every session
// lifecycle builds on. Implementations must support concurrent Get, Put
// and Delete; Delete must be atomic so that of two concurrent destroys
// only one observes true.
type Store interface {
	Put(ctx context.Context, sessionID string, rec Record) error
	Get(ctx context.Context, sessionID string) (Record, bool, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
}
