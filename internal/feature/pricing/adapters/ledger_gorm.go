package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/usecase"
)

// Order side and status values as written by the ledger service.
const (
	orderSideBuy  = "buy"
	orderSideSell = "sell"
	orderOpen     = "open"
)

type ledgerGorm struct {
	db *gorm.DB
}

var _ usecase.LedgerRepository = (*ledgerGorm)(nil)

// NewLedgerRepository creates read-only access to the trade and order
// tables owned by the ledger service. This adapter never writes.
func NewLedgerRepository(db *gorm.DB) *ledgerGorm {
	return &ledgerGorm{db: db}
}

// TradeModel maps the ledger's executed trades. Prices are in the
// reference stable unit.
type TradeModel struct {
	ID         uint            `gorm:"primaryKey"`
	Symbol     string          `gorm:"size:32;not null;index:trade_sym_net"`
	Network    string          `gorm:"size:32;not null;index:trade_sym_net"`
	Price      decimal.Decimal `gorm:"type:numeric(32,18);not null"`
	ExecutedAt time.Time       `gorm:"not null"`
}

func (TradeModel) TableName() string {
	return "trades"
}

// OrderModel maps the ledger's outstanding orders.
type OrderModel struct {
	ID        uint            `gorm:"primaryKey"`
	Symbol    string          `gorm:"size:32;not null;index:order_sym_net"`
	Network   string          `gorm:"size:32;not null;index:order_sym_net"`
	Side      string          `gorm:"size:8;not null"`
	Status    string          `gorm:"size:16;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(32,18);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// LatestTradePrice returns the execution price of the most recent trade
// for (symbol, network). Rows with non-positive prices are skipped at the
// query level; the policy re-checks the invariant anyway.
func (r *ledgerGorm) LatestTradePrice(ctx context.Context, symbol, network string) (decimal.NullDecimal, error) {
	var m TradeModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND network = ? AND price > 0", symbol, network).
		Order("executed_at DESC, id DESC").
		First(&m).Error
	return nullPrice(m.Price, err)
}

// BestBuyOrderPrice returns the highest open bid. Ties on price are
// broken by placement time (earliest wins), then id, so resolution stays
// deterministic when several orders share the best price.
func (r *ledgerGorm) BestBuyOrderPrice(ctx context.Context, symbol, network string) (decimal.NullDecimal, error) {
	var m OrderModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND network = ? AND side = ? AND status = ? AND price > 0",
			symbol, network, orderSideBuy, orderOpen).
		Order("price DESC, created_at ASC, id ASC").
		First(&m).Error
	return nullPrice(m.Price, err)
}

// BestSellOrderPrice returns the lowest open ask, same tie-break as bids.
func (r *ledgerGorm) BestSellOrderPrice(ctx context.Context, symbol, network string) (decimal.NullDecimal, error) {
	var m OrderModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND network = ? AND side = ? AND status = ? AND price > 0",
			symbol, network, orderSideSell, orderOpen).
		Order("price ASC, created_at ASC, id ASC").
		First(&m).Error
	return nullPrice(m.Price, err)
}

// nullPrice converts a single-row query result into a nullable fact: a
// missing row is an absent fact, not an error.
func nullPrice(price decimal.Decimal, err error) (decimal.NullDecimal, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.NullDecimal{}, nil
	}
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: price, Valid: true}, nil
}
