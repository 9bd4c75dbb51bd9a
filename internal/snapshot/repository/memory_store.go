package repository

import (
	"context"
	"sync"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
)

// MemoryStore keeps records in process memory. Used when no external store is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.Record)}
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (domain.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sessionID]
	if !ok || rec.Empty() {
		return domain.Record{}, false, nil
	}
	return rec, true, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}
