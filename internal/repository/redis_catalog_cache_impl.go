package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type CachedCatalogRepositoryImpl struct {
	next   CatalogRepository
	client *redis.Client
	ttl    time.Duration
}

// CreateCachedCatalogRepository puts a Redis read-through cache in front of next.
// Cache errors are logged and fall through to next.
func CreateCachedCatalogRepository(next CatalogRepository, client *redis.Client, ttl time.Duration) *CachedCatalogRepositoryImpl {
	return &CachedCatalogRepositoryImpl{next: next, client: client, ttl: ttl}
}

func catalogCacheKey(limit int) string {
	return fmt.Sprintf("catalog:products:%d", limit)
}

func (r *CachedCatalogRepositoryImpl) GetProducts(ctx context.Context, limit int) (data []domain.Product, err error) {
	cached, err := r.client.Get(ctx, catalogCacheKey(limit)).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(cached, &data); jsonErr == nil {
			return data, nil
		}
		log.Ctx(ctx).Warn().Str("component", "CachedGetProducts").Msg("dropping undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		log.Ctx(ctx).Error().Err(err).Str("component", "CachedGetProducts").Msg("")
	}

	return r.Refresh(ctx, limit)
}

// Refresh fetches the page from the catalog and overwrites the cache entry.
func (r *CachedCatalogRepositoryImpl) Refresh(ctx context.Context, limit int) (data []domain.Product, err error) {
	data, err = r.next.GetProducts(ctx, limit)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return data, nil
	}

	if err := r.client.Set(ctx, catalogCacheKey(limit), encoded, r.ttl).Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "RefreshCatalogCache").Msg("")
	}

	return data, nil
}
