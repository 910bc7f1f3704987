package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/juan-silveira/clube-navi-sub014/internal/app/di"
	"github.com/juan-silveira/clube-navi-sub014/internal/app/router"
	pricinghandler "github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/transport/handler"
	"github.com/juan-silveira/clube-navi-sub014/internal/platform/db"
	infraredis "github.com/juan-silveira/clube-navi-sub014/internal/platform/redis"
)

func main() {
	// db
	gdb := db.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without record cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	cfg := di.LoadPricingConfig()

	// Repository, wrapped in the Redis read cache when available
	records := di.NewPriceRecordRepository(rdb, gdb, cfg.StaleAfter)

	// Usecase
	resolveUC := di.NewResolveUsecase(cfg, gdb, records)

	// In-memory display cache over the local resolver
	priceCache := di.NewPriceCache(cfg, resolveUC)

	// Handler
	pricesH := pricinghandler.NewPriceHandler(resolveUC, priceCache, cfg.Network)

	router := router.NewRouter(pricesH)

	// JWT_SECRET check (the /internal routes fail closed without it)
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
