// Package dto defines the HTTP request/response shapes for the pricing
// feature.
package dto

import "github.com/shopspring/decimal"

// PriceData is the payload of a successful single-price response.
// Price is serialized as a decimal string so callers keep exact
// precision; a JSON float would round long-tail token prices.
type PriceData struct {
	Symbol     string          `json:"symbol"`
	Network    string          `json:"network"`
	Price      decimal.Decimal `json:"price"`
	Source     string          `json:"source"`
	LastUpdate string          `json:"lastUpdate"`
}

// PriceResponse is the envelope for GET /prices/:symbol.
type PriceResponse struct {
	Success bool      `json:"success"`
	Data    PriceData `json:"data"`
}

// BatchPricesData is the payload of a batch quote response.
type BatchPricesData struct {
	Prices map[string]decimal.Decimal `json:"prices"`
}

// BatchPricesResponse is the envelope for GET /prices.
type BatchPricesResponse struct {
	Success bool            `json:"success"`
	Data    BatchPricesData `json:"data"`
}

// ErrorResponse is the envelope for all failures. Error carries the
// internal detail and is omitted for definitive negatives like an
// unknown symbol.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
