// Package usecase implements the business logic for the asset registry.
package usecase

import "context"

// AssetRepository abstracts the persistence layer for registered assets.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AssetRepository interface {
	ExistsActive(ctx context.Context, symbol, network string) (bool, error)
	ListActiveSymbols(ctx context.Context, network string) ([]string, error)
}

// AssetUsecase provides registry lookups for the pricing pipeline.
type AssetUsecase struct {
	repo AssetRepository
}

// NewAssetUsecase creates a new AssetUsecase with the given repository.
func NewAssetUsecase(r AssetRepository) *AssetUsecase {
	return &AssetUsecase{repo: r}
}

// IsKnownSymbol reports whether an active asset is registered for
// (symbol, network). A false result is definitive, distinct from a
// lookup failure.
func (u *AssetUsecase) IsKnownSymbol(ctx context.Context, symbol, network string) (bool, error) {
	return u.repo.ExistsActive(ctx, symbol, network)
}

// ListActiveSymbols returns the tickers of all active assets on network.
func (u *AssetUsecase) ListActiveSymbols(ctx context.Context, network string) ([]string, error) {
	return u.repo.ListActiveSymbols(ctx, network)
}
