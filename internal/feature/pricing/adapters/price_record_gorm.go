// Package adapters provides the persistence implementations for the
// pricing feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/usecase"
)

type priceRecordGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRecordRepository = (*priceRecordGorm)(nil)

// NewPriceRecordRepository creates the gorm-backed price record store.
func NewPriceRecordRepository(db *gorm.DB) *priceRecordGorm {
	return &priceRecordGorm{db: db}
}

// PriceRecordModel is the persistence model for resolved prices, one row
// per (symbol, network).
type PriceRecordModel struct {
	ID         uint            `gorm:"primaryKey"`
	Symbol     string          `gorm:"size:32;not null;uniqueIndex:price_sym_net,priority:1"`
	Network    string          `gorm:"size:32;not null;uniqueIndex:price_sym_net,priority:2"`
	Price      decimal.Decimal `gorm:"type:numeric(32,18);not null"`
	Source     string          `gorm:"size:16;not null"`
	LastUpdate time.Time       `gorm:"not null"`
}

func (PriceRecordModel) TableName() string {
	return "price_records"
}

func toRecordModel(e entity.PriceRecord) PriceRecordModel {
	return PriceRecordModel{
		Symbol:     e.Symbol,
		Network:    e.Network,
		Price:      e.Price,
		Source:     string(e.Source),
		LastUpdate: e.LastUpdate,
	}
}

// Upsert inserts or replaces the record for its (symbol, network) key in a
// single statement, so concurrent resolvers can race without producing a
// torn row. Last writer wins on all value columns.
func (r *priceRecordGorm) Upsert(ctx context.Context, record entity.PriceRecord) error {
	m := toRecordModel(record)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "network"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "source", "last_update"}),
	}).Create(&m).Error
}

// Find returns the stored record for (symbol, network), or nil when the
// pair has never been resolved.
func (r *priceRecordGorm) Find(ctx context.Context, symbol, network string) (*entity.PriceRecord, error) {
	var m PriceRecordModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND network = ?", symbol, network).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity.PriceRecord{
		Symbol:     m.Symbol,
		Network:    m.Network,
		Price:      m.Price,
		Source:     entity.PriceSource(m.Source),
		LastUpdate: m.LastUpdate,
	}, nil
}
