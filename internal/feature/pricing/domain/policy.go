package domain

import (
	"github.com/shopspring/decimal"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
)

// FallbackPrice is returned when no usable market fact exists for a
// symbol. It is also the definitional price of the reference stablecoin.
var FallbackPrice = decimal.NewFromInt(1)

// Resolve computes the canonical price of symbol from the given market
// facts. It is pure: no I/O, deterministic, exact decimal precision.
//
// Tiers, in trust order:
//  1. symbol is the reference stablecoin: 1.00 with source trade,
//     unconditionally. Facts are never consulted, so stale or
//     adversarial order data cannot perturb the reference asset.
//  2. last executed trade price.
//  3. best outstanding buy order (highest bid).
//  4. best outstanding sell order (lowest ask).
//  5. fallback constant 1.00.
//
// A missing, zero or negative fact price is treated as absent and falls
// through to the next tier; it is never propagated.
func Resolve(symbol, stableSymbol string, facts entity.PriceFacts) (decimal.Decimal, entity.PriceSource) {
	if symbol == stableSymbol {
		return FallbackPrice, entity.SourceTrade
	}
	if p, ok := usable(facts.LastTrade); ok {
		return p, entity.SourceTrade
	}
	if p, ok := usable(facts.BestBid); ok {
		return p, entity.SourceBuyOrder
	}
	if p, ok := usable(facts.BestAsk); ok {
		return p, entity.SourceSellOrder
	}
	return FallbackPrice, entity.SourceFallback
}

// usable reports whether the fact exists and carries a positive price.
func usable(d decimal.NullDecimal) (decimal.Decimal, bool) {
	if !d.Valid || d.Decimal.Sign() <= 0 {
		return decimal.Decimal{}, false
	}
	return d.Decimal, true
}
