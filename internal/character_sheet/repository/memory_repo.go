package repository

import (
	"context"
	"sync"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
)

// MemoryRepository keeps saved sheets in process memory
type MemoryRepository struct {
	mu     sync.RWMutex
	sheets map[string]domain.SavedSheet
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sheets: make(map[string]domain.SavedSheet)}
}

func (r *MemoryRepository) Get(_ context.Context, sessionID string) (*domain.SavedSheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	saved, ok := r.sheets[sessionID]
	if !ok {
		return nil, domain.ErrSheetNotFound
	}
	cp := copySaved(saved)
	return &cp, nil
}

func (r *MemoryRepository) Save(_ context.Context, sessionID string, saved domain.SavedSheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sheets[sessionID] = copySaved(saved)
	return nil
}

func copySaved(in domain.SavedSheet) domain.SavedSheet {
	out := domain.SavedSheet{
		Fields:     make(map[string]string, len(in.Fields)),
		Proficient: make(map[string]bool, len(in.Proficient)),
	}
	for k, v := range in.Fields {
		out.Fields[k] = v
	}
	for k, v := range in.Proficient {
		out.Proficient[k] = v
	}
	return out
}
