package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/transport/http/dto"
	"github.com/juan-silveira/clube-navi-sub014/internal/platform/cache"
)

// PriceAPIClient resolves prices against a remote pricing service over
// HTTP. It translates the service's status codes back into the domain
// errors, so callers behave the same whether the resolver is local or
// remote.
type PriceAPIClient struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that PriceAPIClient satisfies the cache resolver.
var _ cache.PriceResolver = (*PriceAPIClient)(nil)

// NewPriceAPIClient creates a new PriceAPIClient with the given
// configuration and HTTP client.
func NewPriceAPIClient(cfg Config, client *http.Client) *PriceAPIClient {
	return &PriceAPIClient{cfg: cfg, client: client}
}

// ResolvePrice fetches the canonical price of (symbol, network) from
// GET /prices/:symbol on the remote service.
func (p *PriceAPIClient) ResolvePrice(ctx context.Context, symbol, network string) (entity.PriceRecord, error) {
	q := url.Values{}
	q.Set("network", network)
	u := fmt.Sprintf("%s/prices/%s?%s", p.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.PriceRecord{}, err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return entity.PriceRecord{}, fmt.Errorf("%w: %v", domain.ErrResolutionUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return entity.PriceRecord{}, fmt.Errorf("%w: %s on %s", domain.ErrUnknownSymbol, symbol, network)
	case res.StatusCode >= 400:
		return entity.PriceRecord{}, fmt.Errorf("%w: price api http %d", domain.ErrResolutionUnavailable, res.StatusCode)
	}

	var body dto.PriceResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.PriceRecord{}, fmt.Errorf("%w: decode response: %v", domain.ErrResolutionUnavailable, err)
	}

	lastUpdate, err := time.Parse(time.RFC3339, body.Data.LastUpdate)
	if err != nil {
		return entity.PriceRecord{}, fmt.Errorf("%w: parse lastUpdate %q: %v", domain.ErrResolutionUnavailable, body.Data.LastUpdate, err)
	}

	return entity.PriceRecord{
		Symbol:     body.Data.Symbol,
		Network:    body.Data.Network,
		Price:      body.Data.Price,
		Source:     entity.PriceSource(body.Data.Source),
		LastUpdate: lastUpdate,
	}, nil
}
