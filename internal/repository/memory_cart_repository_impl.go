package repository

import (
	"context"
	"sync"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
)

type MemoryCartRepositoryImpl struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// CreateMemoryCartRepository keeps serialized records in process memory. Records are
// stored encoded so callers never share slices with the store.
func CreateMemoryCartRepository() *MemoryCartRepositoryImpl {
	return &MemoryCartRepositoryImpl{records: make(map[string][]byte)}
}

func (r *MemoryCartRepositoryImpl) GetCart(ctx context.Context, key string) (items []domain.CartItem, found bool, err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	r.mu.RLock()
	data, ok := r.records[key]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	items, err = decodeCartRecord(data)
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (r *MemoryCartRepositoryImpl) SaveCart(ctx context.Context, key string, items []domain.CartItem) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	data, err := encodeCartRecord(items)
	if err != nil {
		return
	}

	r.mu.Lock()
	r.records[key] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryCartRepositoryImpl) DeleteCart(ctx context.Context, key string) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	r.mu.Lock()
	delete(r.records, key)
	r.mu.Unlock()
	return nil
}

// Raw returns the stored record for key, for inspection.
func (r *MemoryCartRepositoryImpl) Raw(key string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.records[key]
	return data, ok
}

func (r *MemoryCartRepositoryImpl) Close() error {
	return nil
}
