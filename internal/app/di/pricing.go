// Package di provides dependency injection factories for creating application components.
package di

import (
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	assetadapters "github.com/juan-silveira/clube-navi-sub014/internal/feature/assets/adapters"
	assetusecase "github.com/juan-silveira/clube-navi-sub014/internal/feature/assets/usecase"
	pricingadapters "github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/adapters"
	pricingusecase "github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/usecase"
	"github.com/juan-silveira/clube-navi-sub014/internal/platform/cache"
)

// PricingConfig holds the tunables of the price resolution pipeline.
type PricingConfig struct {
	StableSymbol   string        // reference stablecoin ticker, pinned at 1.00
	Network        string        // default network for requests that omit one
	CacheTTL       time.Duration // in-memory display cache TTL
	ResolveTimeout time.Duration // per-resolution timeout inside the cache
	StaleAfter     time.Duration // how long a stored record serves reads before re-resolution
}

// LoadPricingConfig loads pricing configuration from environment
// variables, falling back to the platform defaults.
func LoadPricingConfig() PricingConfig {
	return PricingConfig{
		StableSymbol:   envOr("STABLE_SYMBOL", "cBRL"),
		Network:        envOr("PRICE_NETWORK", "mainnet"),
		CacheTTL:       envSecondsOr("PRICE_CACHE_TTL_SECONDS", cache.DefaultTTL),
		ResolveTimeout: envSecondsOr("PRICE_RESOLVE_TIMEOUT_SECONDS", cache.DefaultResolveTimeout),
		StaleAfter:     envSecondsOr("PRICE_STALE_AFTER_SECONDS", 0),
	}
}

// NewPriceRecordRepository creates the authoritative price record store,
// wrapped in a Redis read cache when a client is available.
func NewPriceRecordRepository(rdb *redis.Client, db *gorm.DB, staleAfter time.Duration) pricingusecase.PriceRecordRepository {
	inner := pricingadapters.NewPriceRecordRepository(db)
	if rdb == nil {
		return inner
	}
	return cache.NewCachingPriceRecordRepository(rdb, staleAfter, inner, "prices")
}

// NewResolveUsecase assembles the resolution pipeline on top of the
// shared database handle.
func NewResolveUsecase(cfg PricingConfig, db *gorm.DB, records pricingusecase.PriceRecordRepository) *pricingusecase.ResolveUsecase {
	registry := assetusecase.NewAssetUsecase(assetadapters.NewAssetRepository(db))
	ledger := pricingadapters.NewLedgerRepository(db)
	return pricingusecase.NewResolveUsecase(registry, ledger, records, cfg.StableSymbol, cfg.StaleAfter)
}

// NewPriceCache creates the in-memory display cache over a resolver.
func NewPriceCache(cfg PricingConfig, resolver cache.PriceResolver) *cache.PriceCache {
	return cache.NewPriceCache(resolver, cfg.Network, cfg.StableSymbol, cfg.CacheTTL, cfg.ResolveTimeout)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSecondsOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
