package roadmaps

import "context"

// Repo defines persistence operations for roadmaps.
type Repo interface {
	Create(ctx context.Context, roadmap Roadmap) error
	GetByID(ctx context.Context, roadmapID string) (Roadmap, error)
	SetExportKey(ctx context.Context, roadmapID, exportKey string) error
}
