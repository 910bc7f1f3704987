package usecase

import (
	"context"
	"log/slog"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
	"github.com/juan-silveira/clube-navi-sub014/internal/shared/ratelimiter"
)

// AssetLister lists the symbols the refresher must re-resolve.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AssetLister interface {
	ListActiveSymbols(ctx context.Context, network string) ([]string, error)
}

// PriceResolver resolves and persists the canonical price of one asset.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, symbol, network string) (entity.PriceRecord, error)
}

// RefreshUsecase re-resolves every active asset so the record store stays
// warm between on-demand resolutions. Run from cron via cmd/refresh.
type RefreshUsecase struct {
	assets      AssetLister
	resolver    PriceResolver
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewRefreshUsecase creates a new RefreshUsecase.
func NewRefreshUsecase(assets AssetLister, resolver PriceResolver, rateLimiter ratelimiter.RateLimiterInterface) *RefreshUsecase {
	return &RefreshUsecase{assets: assets, resolver: resolver, rateLimiter: rateLimiter}
}

// RefreshAll resolves all active symbols on network, pacing calls with
// the rate limiter so a large asset list cannot stampede the ledger.
// One failing symbol is logged and skipped; the sweep continues.
func (ru *RefreshUsecase) RefreshAll(ctx context.Context, network string) error {
	symbols, err := ru.assets.ListActiveSymbols(ctx, network)
	if err != nil {
		return err
	}

	for _, s := range symbols {
		ru.rateLimiter.WaitIfNeeded()
		if _, err := ru.resolver.ResolvePrice(ctx, s, network); err != nil {
			slog.Error("failed to refresh price", "symbol", s, "network", network, "error", err)
			continue
		}
	}
	return nil
}
