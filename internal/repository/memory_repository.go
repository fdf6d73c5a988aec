package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryAnalysisRepository is an in-memory AnalysisRepository used in
// tests and local runs without a MongoDB instance.
type MemoryAnalysisRepository struct {
	mu      sync.RWMutex
	nextID  int
	records map[string]*AnalysisRecord
}

func NewMemoryAnalysisRepository() *MemoryAnalysisRepository {
	return &MemoryAnalysisRepository{
		records: make(map[string]*AnalysisRecord),
	}
}

func (r *MemoryAnalysisRepository) Save(_ context.Context, record *AnalysisRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := fmt.Sprintf("mem-%d", r.nextID)
	stored := *record
	stored.ID = id
	r.records[id] = &stored
	record.ID = id
	return id, nil
}

func (r *MemoryAnalysisRepository) Get(_ context.Context, id string) (*AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *MemoryAnalysisRepository) ListByPhotoURL(_ context.Context, photoURL string) ([]*AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*AnalysisRecord
	for _, record := range r.records {
		if record.PhotoURL == photoURL {
			copied := *record
			records = append(records, &copied)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
