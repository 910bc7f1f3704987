// Package usecase implements the business logic for price resolution.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
)

// AssetRegistry answers whether an asset is registered for a network.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AssetRegistry interface {
	IsKnownSymbol(ctx context.Context, symbol, network string) (bool, error)
}

// LedgerRepository reads market facts from the externally-owned trade and
// order ledger. A fact that does not exist is an invalid NullDecimal, not
// an error.
type LedgerRepository interface {
	// LatestTradePrice returns the execution price of the most recent
	// trade of symbol against the reference stablecoin.
	LatestTradePrice(ctx context.Context, symbol, network string) (decimal.NullDecimal, error)
	// BestBuyOrderPrice returns the highest open bid. When several open
	// orders share the best price, the earliest placed order wins.
	BestBuyOrderPrice(ctx context.Context, symbol, network string) (decimal.NullDecimal, error)
	// BestSellOrderPrice returns the lowest open ask, same tie-break.
	BestSellOrderPrice(ctx context.Context, symbol, network string) (decimal.NullDecimal, error)
}

// PriceRecordRepository persists resolved price records, keyed by
// (symbol, network).
type PriceRecordRepository interface {
	// Upsert atomically inserts or replaces the record for its key.
	Upsert(ctx context.Context, record entity.PriceRecord) error
	// Find returns the stored record, or nil when none exists.
	Find(ctx context.Context, symbol, network string) (*entity.PriceRecord, error)
}

// ResolveUsecase orchestrates price resolution: registry check, fact
// reads, policy application, record upsert. Every successful resolution
// is a write, which keeps the record store an always-fresh materialized
// view of policy output.
type ResolveUsecase struct {
	registry     AssetRegistry
	ledger       LedgerRepository
	records      PriceRecordRepository
	stableSymbol string
	staleAfter   time.Duration
	now          func() time.Time
}

// NewResolveUsecase creates a new ResolveUsecase. stableSymbol is the
// platform's reference stablecoin ticker. staleAfter is how long a
// stored record keeps serving reads before the policy is re-applied;
// zero disables the fast path and re-resolves on every call.
func NewResolveUsecase(registry AssetRegistry, ledger LedgerRepository, records PriceRecordRepository, stableSymbol string, staleAfter time.Duration) *ResolveUsecase {
	return &ResolveUsecase{
		registry:     registry,
		ledger:       ledger,
		records:      records,
		stableSymbol: stableSymbol,
		staleAfter:   staleAfter,
		now:          time.Now,
	}
}

// ResolvePrice resolves the canonical price of (symbol, network), persists
// it and returns the resulting record.
//
// Errors are distinct and never defaulted here: domain.ErrUnknownSymbol
// when the asset is not registered, domain.ErrResolutionUnavailable when
// the ledger or the store cannot be reached. Deciding whether a degraded
// price is acceptable belongs to the caller.
func (u *ResolveUsecase) ResolvePrice(ctx context.Context, symbol, network string) (entity.PriceRecord, error) {
	// The reference stablecoin is 1.00 by definition; no registry or
	// ledger round-trip can change that.
	if symbol != u.stableSymbol {
		known, err := u.registry.IsKnownSymbol(ctx, symbol, network)
		if err != nil {
			return entity.PriceRecord{}, fmt.Errorf("%w: registry check for %s: %v", domain.ErrResolutionUnavailable, symbol, err)
		}
		if !known {
			return entity.PriceRecord{}, fmt.Errorf("%w: %s on %s", domain.ErrUnknownSymbol, symbol, network)
		}

		// The store is a materialized view of policy output: a record
		// still inside its staleness window serves reads without
		// re-consulting the ledger.
		if u.staleAfter > 0 {
			stored, err := u.records.Find(ctx, symbol, network)
			if err != nil {
				return entity.PriceRecord{}, fmt.Errorf("%w: read record for %s: %v", domain.ErrResolutionUnavailable, symbol, err)
			}
			if stored != nil && u.now().Sub(stored.LastUpdate) < u.staleAfter {
				return *stored, nil
			}
		}
	}

	facts, err := u.readFacts(ctx, symbol, network)
	if err != nil {
		return entity.PriceRecord{}, err
	}

	price, source := domain.Resolve(symbol, u.stableSymbol, facts)

	record := entity.PriceRecord{
		Symbol:     symbol,
		Network:    network,
		Price:      price,
		Source:     source,
		LastUpdate: u.now().UTC(),
	}
	if err := u.records.Upsert(ctx, record); err != nil {
		return entity.PriceRecord{}, fmt.Errorf("%w: persist record for %s: %v", domain.ErrResolutionUnavailable, symbol, err)
	}
	return record, nil
}

// readFacts gathers the three market facts. The stablecoin never reaches
// the policy tiers that consume them, so its facts are skipped entirely.
func (u *ResolveUsecase) readFacts(ctx context.Context, symbol, network string) (entity.PriceFacts, error) {
	if symbol == u.stableSymbol {
		return entity.PriceFacts{}, nil
	}

	var facts entity.PriceFacts
	var err error

	if facts.LastTrade, err = u.ledger.LatestTradePrice(ctx, symbol, network); err != nil {
		return entity.PriceFacts{}, fmt.Errorf("%w: latest trade for %s: %v", domain.ErrResolutionUnavailable, symbol, err)
	}
	if facts.BestBid, err = u.ledger.BestBuyOrderPrice(ctx, symbol, network); err != nil {
		return entity.PriceFacts{}, fmt.Errorf("%w: best bid for %s: %v", domain.ErrResolutionUnavailable, symbol, err)
	}
	if facts.BestAsk, err = u.ledger.BestSellOrderPrice(ctx, symbol, network); err != nil {
		return entity.PriceFacts{}, fmt.Errorf("%w: best ask for %s: %v", domain.ErrResolutionUnavailable, symbol, err)
	}
	return facts, nil
}
