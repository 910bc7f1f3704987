package di

import (
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/client"
	infrahttp "github.com/juan-silveira/clube-navi-sub014/internal/platform/http"
)

// NewRemoteResolver creates a fully configured price API client with HTTP client.
// Batch jobs that run outside the pricing service resolve through it.
func NewRemoteResolver() *client.PriceAPIClient {
	cfg := client.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return client.NewPriceAPIClient(cfg, httpClient)
}
