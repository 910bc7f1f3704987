package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/usecase"
)

// CachingPriceRecordRepository decorates a PriceRecordRepository with
// Redis caching of the read path, so replicas sharing one record store
// do not hammer it for the same keys. It implements the decorator
// pattern, transparently adding caching without modifying the underlying
// repository.
//
// Caching is best effort: Redis failures never fail the underlying call,
// and a nil client bypasses caching entirely.
type CachingPriceRecordRepository struct {
	inner     usecase.PriceRecordRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PriceRecordRepository = (*CachingPriceRecordRepository)(nil)

// NewCachingPriceRecordRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 30 seconds. If namespace is empty, it uses
// "prices".
func NewCachingPriceRecordRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceRecordRepository, namespace string) *CachingPriceRecordRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRecordRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Upsert writes through to the underlying repository and invalidates the
// key's cache entry so readers never see a superseded record for a full
// TTL window.
func (c *CachingPriceRecordRepository) Upsert(ctx context.Context, record entity.PriceRecord) error {
	if err := c.inner.Upsert(ctx, record); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.rdb.Del(ctx, c.cacheKey(record.Symbol, record.Network)).Err() // Best effort
	return nil
}

// Find retrieves a record, checking Redis first then falling back to the
// underlying repository. A record that has never been resolved is not
// cached.
func (c *CachingPriceRecordRepository) Find(ctx context.Context, symbol, network string) (*entity.PriceRecord, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol, network)
	}

	key := c.cacheKey(symbol, network)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.PriceRecord
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Find(ctx, symbol, network)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err() // Best effort
	}
	return out, nil
}

// cacheKey generates the cache key for one (symbol, network) record.
func (c *CachingPriceRecordRepository) cacheKey(symbol, network string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(symbol), safe(network))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
