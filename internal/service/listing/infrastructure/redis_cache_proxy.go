package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"bazaar/internal/pkg/logger"
	"bazaar/internal/service/listing/domain"
)

const listingCacheTTL = 10 * time.Minute

// RedisCacheProxy 用 Redis 做跨进程的读缓存。
// 缓存故障不影响主路径：读失败退化为回源，写失败只删键并记日志。
type RedisCacheProxy struct {
	inner  domain.ListingRepository
	client *redis.Client
}

func NewRedisCacheProxy(inner domain.ListingRepository, client *redis.Client) *RedisCacheProxy {
	return &RedisCacheProxy{inner: inner, client: client}
}

func cacheKey(id uuid.UUID) string {
	return "listing:cache:" + id.String()
}

func (p *RedisCacheProxy) Find(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	raw, err := p.client.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var cached domain.Listing
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		// 反序列化失败说明缓存内容损坏，删掉后回源
		p.client.Del(ctx, cacheKey(id))
	} else if !errors.Is(err, redis.Nil) {
		logger.Ctx(ctx).Warn().Err(err).Str("listing_id", id.String()).Msg("listing cache read failed, falling back to repository")
	}

	found, err := p.inner.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	p.fill(ctx, found)
	return found, nil
}

func (p *RedisCacheProxy) Save(ctx context.Context, listing *domain.Listing) error {
	if err := p.inner.Save(ctx, listing); err != nil {
		return err
	}
	p.fill(ctx, listing)
	return nil
}

func (p *RedisCacheProxy) Update(ctx context.Context, id uuid.UUID, listing *domain.Listing) error {
	if err := p.inner.Update(ctx, id, listing); err != nil {
		p.client.Del(ctx, cacheKey(id))
		return err
	}
	p.fill(ctx, listing)
	return nil
}

func (p *RedisCacheProxy) Delete(ctx context.Context, id uuid.UUID) error {
	if err := p.inner.Delete(ctx, id); err != nil {
		return err
	}
	if err := p.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("listing_id", id.String()).Msg("failed to evict listing cache entry")
	}
	return nil
}

func (p *RedisCacheProxy) fill(ctx context.Context, listing *domain.Listing) {
	raw, err := json.Marshal(listing)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("listing_id", listing.ID.String()).Msg("failed to marshal listing for cache")
		return
	}
	if err := p.client.Set(ctx, cacheKey(listing.ID), raw, listingCacheTTL).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("listing_id", listing.ID.String()).Msg("failed to fill listing cache entry")
	}
}
