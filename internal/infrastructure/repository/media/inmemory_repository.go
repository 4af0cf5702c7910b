package media

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/emerginginv/media-api/internal/domain/media"
	"github.com/emerginginv/media-api/internal/utils/platformerrors"
	"github.com/emerginginv/media-api/utils/mediaid"
)

// InMemoryRepository is a thread-safe catalog for local runs and tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.Asset
	now     func() time.Time
}

// NewInMemoryRepository returns an empty catalog.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		entries: make(map[string]domain.Asset),
		now:     time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, asset *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	if asset.ID == "" {
		asset.ID = mediaid.NewAt(now)
	}
	if _, exists := r.entries[asset.ID]; exists {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
			"media record already exists", nil, "3b7e9c2a-5f14-4d68-b1a0-8c6e2d4f9b37")
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = now
	}
	asset.UpdatedAt = now

	stored := *asset
	stored.PublicURL = ""
	r.entries[asset.ID] = stored
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, ok := r.entries[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"media record not found", nil, "e5c1a7d9-2b46-4f80-9a3e-7d1b5c8f0e62")
	}
	return &asset, nil
}

func (r *InMemoryRepository) List(_ context.Context, filter domain.ListFilter) ([]domain.Asset, error) {
	r.mu.RLock()
	out := make([]domain.Asset, 0, len(r.entries))
	for _, asset := range r.entries {
		if filter.Category != "" && asset.Category != filter.Category {
			continue
		}
		if filter.FeaturedOnly && !asset.IsFeatured {
			continue
		}
		out = append(out, asset)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"media record not found", nil, "9f4d2b8e-1a63-4c57-b7e0-2d5a9c3f6b81")
	}
	delete(r.entries, id)
	return nil
}

func (r *InMemoryRepository) CountByCategory(context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, asset := range r.entries {
		counts[asset.Category]++
	}
	return counts, nil
}

// Len returns the number of stored rows.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
