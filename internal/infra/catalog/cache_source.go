package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/repository"
	"premium-store/internal/infra/logging"
	"premium-store/internal/infra/metrics"
	red "premium-store/internal/infra/redis"
)

var _ repository.CatalogSource = (*cacheDecorator)(nil)

type cacheDecorator struct {
	inner repository.CatalogSource
	cache red.RedisClient
	ttl   time.Duration
	log   *zerolog.Logger
}

// NewCachedSource keeps the catalog document of inner in Redis for ttl.
// Redis failures degrade to a direct fetch.
func NewCachedSource(inner repository.CatalogSource, cache red.RedisClient, ttl time.Duration, logger *zerolog.Logger) repository.CatalogSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	l := logging.OrNop(logger).With().Str("component", "CachedSource").Logger()
	return &cacheDecorator{inner: inner, cache: cache, ttl: ttl, log: &l}
}

// CacheKey is the Redis key holding the document of the source at locator.
func CacheKey(locator string) string { return fmt.Sprintf("catalog:%s", locator) }

func (d *cacheDecorator) Locator() string { return d.inner.Locator() }

func (d *cacheDecorator) Fetch(ctx context.Context) ([]*model.Plan, error) {
	key := CacheKey(d.inner.Locator())
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		if plans, derr := model.DecodeCatalog([]byte(val)); derr == nil {
			metrics.IncCacheRequest("catalog", "hit")
			return plans, nil
		}
		// A stale or corrupt entry is dropped and refetched.
		_ = d.cache.Del(ctx, key)
	} else if !errors.Is(err, red.Nil) {
		metrics.IncCacheRequest("catalog", "error")
		d.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
	}

	metrics.IncCacheRequest("catalog", "miss")
	raw, plans, err := d.fetchInner(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.cache.Set(ctx, key, raw, d.ttl); err != nil {
		d.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
	return plans, nil
}

func (d *cacheDecorator) fetchInner(ctx context.Context) ([]byte, []*model.Plan, error) {
	if rs, ok := d.inner.(repository.RawCatalogSource); ok {
		raw, err := rs.FetchRaw(ctx)
		if err != nil {
			return nil, nil, err
		}
		plans, err := model.DecodeCatalog(raw)
		if err != nil {
			return nil, nil, err
		}
		return raw, plans, nil
	}

	plans, err := d.inner.Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}
	raw, err := model.EncodeCatalog(plans)
	if err != nil {
		return nil, nil, fmt.Errorf("encode catalog: %w", err)
	}
	return raw, plans, nil
}
