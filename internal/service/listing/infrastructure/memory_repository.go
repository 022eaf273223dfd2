package infrastructure

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bazaar/internal/service/listing/domain"
)

// MemoryListingRepository 基于内存 map 的仓储实现，读写加锁。
type MemoryListingRepository struct {
	mu      sync.RWMutex
	storage map[uuid.UUID]*domain.Listing
}

func NewMemoryListingRepository() *MemoryListingRepository {
	return &MemoryListingRepository{storage: make(map[uuid.UUID]*domain.Listing)}
}

func (r *MemoryListingRepository) Save(_ context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[listing.ID] = listing
	return nil
}

func (r *MemoryListingRepository) Find(_ context.Context, id uuid.UUID) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.storage[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return l, nil
}

func (r *MemoryListingRepository) Update(_ context.Context, id uuid.UUID, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[id]; !ok {
		return domain.ErrListingNotFound
	}
	r.storage[id] = listing
	return nil
}

func (r *MemoryListingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.storage, id)
	return nil
}
