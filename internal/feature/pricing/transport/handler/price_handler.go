// Package handler provides the HTTP handlers for the pricing feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/transport/http/dto"
)

// PriceUsecase resolves the canonical price of one asset.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PriceUsecase interface {
	ResolvePrice(ctx context.Context, symbol, network string) (entity.PriceRecord, error)
}

// PriceQuoter serves cached display prices and cache invalidation.
type PriceQuoter interface {
	GetPrices(ctx context.Context, symbols []string) map[string]decimal.Decimal
	ClearCache()
}

// PriceHandler handles HTTP requests for asset prices.
type PriceHandler struct {
	uc             PriceUsecase
	quotes         PriceQuoter
	defaultNetwork string
}

// NewPriceHandler creates a PriceHandler with the given usecase, quote
// cache, and default network for requests that omit ?network=.
func NewPriceHandler(uc PriceUsecase, quotes PriceQuoter, defaultNetwork string) *PriceHandler {
	return &PriceHandler{uc: uc, quotes: quotes, defaultNetwork: defaultNetwork}
}

// GetPriceHandler resolves and returns the canonical price of one symbol.
//
// Endpoint:
// GET /prices/:symbol?network=mainnet
func (h *PriceHandler) GetPriceHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	network := c.DefaultQuery("network", h.defaultNetwork)

	record, err := h.uc.ResolvePrice(c.Request.Context(), symbol, network)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, dto.PriceResponse{
		Success: true,
		Data:    toPriceData(record),
	})
}

// GetPricesHandler returns cached prices for a comma-separated symbol
// list. Individual symbols degrade to the fallback constant; the batch
// itself never fails.
//
// Endpoint:
// GET /prices?symbols=CLB,NAV,cBRL
func (h *PriceHandler) GetPricesHandler(c *gin.Context) {
	symbols := splitSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "query parameter 'symbols' is required",
		})
		return
	}

	prices := h.quotes.GetPrices(c.Request.Context(), symbols)

	c.JSON(http.StatusOK, dto.BatchPricesResponse{
		Success: true,
		Data:    dto.BatchPricesData{Prices: prices},
	})
}

// RefreshPriceHandler re-resolves one symbol on demand. The ledger
// service calls this after recording a trade or order, which keeps the
// push path and the pull path on the same resolution code.
//
// Endpoint:
// POST /internal/prices/:symbol/refresh?network=mainnet
func (h *PriceHandler) RefreshPriceHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	network := c.DefaultQuery("network", h.defaultNetwork)

	record, err := h.uc.ResolvePrice(c.Request.Context(), symbol, network)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, dto.PriceResponse{
		Success: true,
		Data:    toPriceData(record),
	})
}

// ClearCacheHandler drops all cached display prices.
//
// Endpoint:
// POST /internal/cache/clear
func (h *PriceHandler) ClearCacheHandler(c *gin.Context) {
	h.quotes.ClearCache()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeError maps domain errors onto the response envelope: 404 for a
// definitive unknown symbol, 502 for upstream unavailability, 500
// otherwise.
func (h *PriceHandler) writeError(c *gin.Context, symbol string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownSymbol):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Success: false,
			Message: "symbol not found: " + symbol,
		})
	case errors.Is(err, domain.ErrResolutionUnavailable):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Success: false,
			Message: "price resolution temporarily unavailable",
			Error:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "internal error",
			Error:   err.Error(),
		})
	}
}

func toPriceData(record entity.PriceRecord) dto.PriceData {
	return dto.PriceData{
		Symbol:     record.Symbol,
		Network:    record.Network,
		Price:      record.Price,
		Source:     string(record.Source),
		LastUpdate: record.LastUpdate.UTC().Format(time.RFC3339),
	}
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := map[string]struct{}{}
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
