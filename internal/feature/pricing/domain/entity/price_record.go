// Package entity defines the domain models for the pricing feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSource tags which resolution tier produced a price.
// The tiers form a total trust order:
// trade > buy_order > sell_order > fallback.
type PriceSource string

const (
	// SourceTrade means the price came from the last executed trade
	// against the reference stablecoin.
	SourceTrade PriceSource = "trade"
	// SourceBuyOrder means the price came from the best outstanding
	// buy order (highest bid).
	SourceBuyOrder PriceSource = "buy_order"
	// SourceSellOrder means the price came from the best outstanding
	// sell order (lowest ask).
	SourceSellOrder PriceSource = "sell_order"
	// SourceFallback means no usable market fact existed and the
	// fallback constant was used.
	SourceFallback PriceSource = "fallback"
)

// PriceRecord is the authoritative resolved price of one asset on one
// network, expressed in the platform's reference stable unit.
type PriceRecord struct {
	Symbol     string
	Network    string
	Price      decimal.Decimal
	Source     PriceSource
	LastUpdate time.Time
}

// PriceFacts bundles the market facts the resolution policy consumes for
// one symbol: the latest executed trade price, the best outstanding bid
// and the best outstanding ask, each against the reference stablecoin.
// An invalid NullDecimal means the fact does not exist.
type PriceFacts struct {
	LastTrade decimal.NullDecimal
	BestBid   decimal.NullDecimal
	BestAsk   decimal.NullDecimal
}
