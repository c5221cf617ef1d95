package records

import (
	"context"
	"sync"
)

// MemoryStore keeps records in-process. It is not durable across
// restarts and exists for tests and single-node experiments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]SessionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]SessionRecord)}
}

func (m *MemoryStore) Save(ctx context.Context, rec SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.SessionID] = rec
	return nil
}

func (m *MemoryStore) Search(ctx context.Context, sessionID string) ([]SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[sessionID]
	if !ok {
		return nil, nil
	}
	return []SessionRecord{rec}, nil
}

func (m *MemoryStore) Remove(ctx context.Context, rec SessionRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[rec.SessionID]
	if ok {
		delete(m.records, rec.SessionID)
	}
	return ok, nil
}
