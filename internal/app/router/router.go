package router

import (
	pricinghandler "github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/transport/handler"
	"github.com/juan-silveira/clube-navi-sub014/internal/platform/http/handler"
	jwtmw "github.com/juan-silveira/clube-navi-sub014/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(prices *pricinghandler.PriceHandler) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	// Public price reads
	r.GET("/prices/:symbol", prices.GetPriceHandler)
	r.GET("/prices", prices.GetPricesHandler)

	// Internal routes require a signed service token
	internal := r.Group("/internal")
	internal.Use(jwtmw.AuthRequired())
	{
		internal.POST("/prices/:symbol/refresh", prices.RefreshPriceHandler)
		internal.POST("/cache/clear", prices.ClearCacheHandler)
	}

	return r
}
