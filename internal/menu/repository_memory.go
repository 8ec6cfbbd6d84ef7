package menu

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepository struct {
	mu        sync.Mutex
	overrides map[ImageKey]string
	created   map[int]Item
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		overrides: make(map[ImageKey]string),
		created:   make(map[int]Item),
	}
}

func (r *MemoryRepository) LoadImageOverrides(ctx context.Context) (map[ImageKey]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[ImageKey]string, len(r.overrides))
	for key, url := range r.overrides {
		out[key] = url
	}
	return out, nil
}

func (r *MemoryRepository) SaveImageOverride(ctx context.Context, key ImageKey, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = imageURL
	return nil
}

func (r *MemoryRepository) ClearImageOverrides(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides = make(map[ImageKey]string)
	return nil
}

func (r *MemoryRepository) LoadCreatedItems(ctx context.Context) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]Item, 0, len(r.created))
	for _, it := range r.created {
		items = append(items, it.Clone())
	}
	// newest first, same as the gallery shows them
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (r *MemoryRepository) SaveCreatedItem(ctx context.Context, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created[item.ID] = item.Clone()
	return nil
}

func (r *MemoryRepository) ClearCreatedItems(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = make(map[int]Item)
	return nil
}
