package order

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// HistoryKeyPrefix is the storage key of the paid-order history. Sessions
// append ":<sessionID>".
const HistoryKeyPrefix = "orderHistory"

func HistoryKey(sessionID string) string {
	return HistoryKeyPrefix + ":" + sessionID
}

// HistoryRepository persists the newest-first order history under a key.
type HistoryRepository interface {
	Load(ctx context.Context, key string) ([]Order, error)
	Save(ctx context.Context, key string, orders []Order) error
	// LoadAll returns every order stored under keys starting with prefix.
	LoadAll(ctx context.Context, prefix string) ([]Order, error)
}

type InMemoryHistoryRepository struct {
	mu      sync.RWMutex
	entries map[string][]Order
}

func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{
		entries: make(map[string][]Order),
	}
}

func (r *InMemoryHistoryRepository) Load(_ context.Context, key string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders, ok := r.entries[key]
	if !ok {
		return []Order{}, nil
	}
	return cloneOrders(orders), nil
}

func (r *InMemoryHistoryRepository) Save(_ context.Context, key string, orders []Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = cloneOrders(orders)
	return nil
}

func (r *InMemoryHistoryRepository) LoadAll(_ context.Context, prefix string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	all := []Order{}
	for _, k := range keys {
		all = append(all, cloneOrders(r.entries[k])...)
	}
	return all, nil
}
