package adapters

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/core/cache"
	"storefront/internal/core/logger"
	"storefront/internal/features/catalog/domain"
	"storefront/internal/features/catalog/ports"

	"go.uber.org/zap"
)

const catalogCacheKey = "catalog:products"

// CachedProvider is a read-through cache over another CatalogProvider.
// Only the product list is cached; single-product lookups pass through.
// Cache failures are treated as misses so the remote API stays the source
// of truth.
type CachedProvider struct {
	next  ports.CatalogProvider
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps next with a cache holding the list for ttl.
func NewCachedProvider(next ports.CatalogProvider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

// Products returns the cached product list when present, otherwise fetches
// from the wrapped provider and stores the result.
func (p *CachedProvider) Products(ctx context.Context) (domain.ProductList, error) {
	if data, err := p.cache.Get(ctx, catalogCacheKey); err == nil {
		var list domain.ProductList
		err = json.Unmarshal(data, &list)
		if err == nil {
			return list, nil
		}
		logger.Get().Warn("Discarding unreadable cached catalog", zap.Error(err))
	}

	list, err := p.next.Products(ctx)
	if err != nil {
		return domain.ProductList{}, err
	}

	data, err := json.Marshal(list)
	if err == nil {
		if err := p.cache.Set(ctx, catalogCacheKey, data, p.ttl); err != nil {
			logger.Get().Warn("Failed to cache catalog", zap.Error(err))
		}
	}

	return list, nil
}

// ProductByID delegates to the wrapped provider.
func (p *CachedProvider) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	return p.next.ProductByID(ctx, id)
}
