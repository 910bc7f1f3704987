// Package adapters provides the repository implementation for the assets
// feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/assets/domain/entity"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/assets/usecase"
)

type assetGorm struct {
	db *gorm.DB
}

var _ usecase.AssetRepository = (*assetGorm)(nil)

// NewAssetRepository creates the gorm-backed asset registry.
func NewAssetRepository(db *gorm.DB) *assetGorm {
	return &assetGorm{db: db}
}

// ExistsActive reports whether an active asset row exists for the
// (symbol, network) pair.
func (r *assetGorm) ExistsActive(ctx context.Context, symbol, network string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Asset{}).
		Where("symbol = ? AND network = ? AND is_active = ?", symbol, network, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActiveSymbols returns the tickers of active assets on network in
// symbol order.
func (r *assetGorm) ListActiveSymbols(ctx context.Context, network string) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Asset{}).
		Where("network = ? AND is_active = ?", network, true).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
