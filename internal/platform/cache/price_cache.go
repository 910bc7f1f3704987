// Package cache provides caching implementations for the pricing feature.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
)

// PriceResolver resolves the canonical price of one asset. Satisfied by
// the in-process resolve usecase and by the HTTP client for remote
// callers.
// Following Go convention: interfaces are defined by the consumer (cache), not the provider.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, symbol, network string) (entity.PriceRecord, error)
}

const (
	// DefaultTTL is how long a cached price stays valid.
	DefaultTTL = 30 * time.Second
	// DefaultResolveTimeout bounds one resolution attempt, mirroring the
	// HTTP client timeout used for remote resolution.
	DefaultResolveTimeout = 10 * time.Second
	// maxBatchConcurrency bounds the fan-out of GetPrices.
	maxBatchConcurrency = 8
)

// priceEntry is one cached price. Entries are replaced whole, never
// mutated in place.
type priceEntry struct {
	price    decimal.Decimal
	source   entity.PriceSource
	cachedAt time.Time
}

// PriceCache shields callers from resolution cost and transient
// unavailability: per-symbol TTL caching, coalescing of concurrent misses
// into a single in-flight resolution, and degradation to the fallback
// constant when resolution fails transiently.
//
// The cache is an explicit instance with injected state, not a
// process-wide singleton; each consumer constructs and owns its own.
// Safe for concurrent use.
type PriceCache struct {
	resolver       PriceResolver
	network        string
	stableSymbol   string
	ttl            time.Duration
	resolveTimeout time.Duration

	mu      sync.RWMutex
	entries map[string]priceEntry
	flight  singleflight.Group
	now     func() time.Time
}

// NewPriceCache creates a PriceCache over resolver for one network.
// Non-positive ttl or resolveTimeout fall back to the defaults.
func NewPriceCache(resolver PriceResolver, network, stableSymbol string, ttl, resolveTimeout time.Duration) *PriceCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if resolveTimeout <= 0 {
		resolveTimeout = DefaultResolveTimeout
	}
	return &PriceCache{
		resolver:       resolver,
		network:        network,
		stableSymbol:   stableSymbol,
		ttl:            ttl,
		resolveTimeout: resolveTimeout,
		entries:        make(map[string]priceEntry),
		now:            time.Now,
	}
}

// GetPrice returns the price of symbol in the reference stable unit.
//
// The reference stablecoin returns 1.00 immediately, bypassing cache and
// resolver. A fresh cache entry is returned without I/O. On a miss the
// resolver is called once even under concurrent misses; the result
// replaces the entry atomically.
//
// Transient resolution failures degrade to the fallback constant with a
// logged warning; the degraded value is not cached, so the next call
// retries. An unknown symbol is surfaced as domain.ErrUnknownSymbol:
// pricing a nonexistent asset at 1.00 would be a correctness bug, not
// graceful degradation.
func (c *PriceCache) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if symbol == c.stableSymbol {
		return domain.FallbackPrice, nil
	}

	if e, ok := c.lookup(symbol); ok {
		return e.price, nil
	}

	v, err, _ := c.flight.Do(symbol, func() (interface{}, error) {
		// A coalesced caller may arrive after the winning flight stored
		// the entry; serve it instead of resolving twice.
		if e, ok := c.lookup(symbol); ok {
			return e, nil
		}

		rctx, cancel := context.WithTimeout(ctx, c.resolveTimeout)
		defer cancel()

		record, err := c.resolver.ResolvePrice(rctx, symbol, c.network)
		if err != nil {
			return priceEntry{}, err
		}

		e := priceEntry{price: record.Price, source: record.Source, cachedAt: c.now()}
		c.store(symbol, e)
		return e, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSymbol) {
			return decimal.Decimal{}, err
		}
		slog.Warn("price resolution degraded to fallback", "symbol", symbol, "network", c.network, "error", err)
		return domain.FallbackPrice, nil
	}

	e := v.(priceEntry)
	slog.Debug("price resolved", "symbol", symbol, "price", e.price, "source", e.source)
	return e.price, nil
}

// GetPrices resolves all requested symbols concurrently and returns a
// complete symbol → price mapping. Each symbol hits or misses the cache
// independently; a failing symbol degrades to the fallback constant and
// never fails the batch.
func (c *PriceCache) GetPrices(ctx context.Context, symbols []string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(symbols))
	var outMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchConcurrency)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			price, err := c.GetPrice(gctx, symbol)
			if err != nil {
				slog.Warn("batch price degraded to fallback", "symbol", symbol, "error", err)
				price = domain.FallbackPrice
			}
			outMu.Lock()
			out[symbol] = price
			outMu.Unlock()
			return nil
		})
	}
	// Workers never return errors; a partial failure must not fail the
	// batch for the other symbols.
	_ = g.Wait()
	return out
}

// ClearCache drops all entries, forcing resolution on subsequent calls.
// Used after a known price-moving event.
func (c *PriceCache) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]priceEntry)
}

// lookup returns the entry for symbol if it is within its TTL window.
func (c *PriceCache) lookup(symbol string) (priceEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[symbol]
	if !ok || c.now().Sub(e.cachedAt) >= c.ttl {
		return priceEntry{}, false
	}
	return e, true
}

// store replaces the entry for symbol as a whole.
func (c *PriceCache) store(symbol string, e priceEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = e
}
