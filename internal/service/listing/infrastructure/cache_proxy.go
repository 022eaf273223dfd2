package infrastructure

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bazaar/internal/service/listing/domain"
)

// CacheProxy 在任意仓储前面挂一层进程内读缓存。
// 写操作直写底层仓储并同步维护缓存，读命中则完全不碰底层。
// 缓存表加锁，整个操作持锁执行，保证缓存与底层仓储的变更对外原子可见。
type CacheProxy struct {
	mu    sync.Mutex
	inner domain.ListingRepository
	cache map[uuid.UUID]*domain.Listing
}

func NewCacheProxy(inner domain.ListingRepository) *CacheProxy {
	return &CacheProxy{inner: inner, cache: make(map[uuid.UUID]*domain.Listing)}
}

func (p *CacheProxy) Find(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.cache[id]; ok {
		return cached.Clone(), nil
	}
	found, err := p.inner.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	p.cache[id] = found.Clone()
	return found, nil
}

func (p *CacheProxy) Save(ctx context.Context, listing *domain.Listing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.inner.Save(ctx, listing); err != nil {
		return err
	}
	p.cache[listing.ID] = listing.Clone()
	return nil
}

func (p *CacheProxy) Update(ctx context.Context, id uuid.UUID, listing *domain.Listing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.inner.Update(ctx, id, listing); err != nil {
		// 更新失败时丢弃可能过期的缓存项
		if errors.Is(err, domain.ErrListingNotFound) {
			delete(p.cache, id)
		}
		return err
	}
	p.cache[id] = listing.Clone()
	return nil
}

func (p *CacheProxy) Delete(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.inner.Delete(ctx, id); err != nil {
		return err
	}
	delete(p.cache, id)
	return nil
}
