package main

import (
	"context"
	"log"
	"time"

	"github.com/juan-silveira/clube-navi-sub014/internal/app/di"
	assetadapters "github.com/juan-silveira/clube-navi-sub014/internal/feature/assets/adapters"
	assetusecase "github.com/juan-silveira/clube-navi-sub014/internal/feature/assets/usecase"
	pricingusecase "github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/usecase"
	"github.com/juan-silveira/clube-navi-sub014/internal/platform/db"
	"github.com/juan-silveira/clube-navi-sub014/internal/shared/ratelimiter"
)

func main() {
	gdb := db.OpenDB()

	cfg := di.LoadPricingConfig()
	assets := assetusecase.NewAssetUsecase(assetadapters.NewAssetRepository(gdb))
	resolver := di.NewRemoteResolver()
	limiter := ratelimiter.NewRateLimiter(60, time.Minute)

	uc := pricingusecase.NewRefreshUsecase(assets, resolver, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := uc.RefreshAll(ctx, cfg.Network); err != nil {
		log.Fatal(err)
	}
	log.Println("refresh ok")
}
