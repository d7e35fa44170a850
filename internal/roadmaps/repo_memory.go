package roadmaps

import (
	"context"
	"sync"
)

// MemoryRepo stores roadmaps in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Roadmap
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Roadmap)}
}

// Create stores the roadmap.
func (r *MemoryRepo) Create(ctx context.Context, roadmap Roadmap) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[roadmap.ID] = roadmap
	return nil
}

// GetByID returns a roadmap by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, roadmapID string) (Roadmap, error) {
	if err := ctx.Err(); err != nil {
		return Roadmap{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	roadmap, ok := r.byID[roadmapID]
	if !ok {
		return Roadmap{}, ErrNotFound
	}
	return roadmap, nil
}

// SetExportKey records where the export document was archived.
func (r *MemoryRepo) SetExportKey(ctx context.Context, roadmapID, exportKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	roadmap, ok := r.byID[roadmapID]
	if !ok {
		return ErrNotFound
	}
	roadmap.ExportKey = exportKey
	r.byID[roadmapID] = roadmap
	return nil
}
