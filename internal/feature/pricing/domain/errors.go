// Package domain defines domain-level errors and the price resolution
// policy for the pricing feature.
package domain

import "errors"

// Domain errors for price resolution.
// These errors represent distinct failure modes and must never be
// collapsed into each other by upper layers: returning a default price
// for an asset that does not exist is a correctness bug, while degrading
// during a transient outage is an accepted tradeoff made by the caller.
var (
	// ErrUnknownSymbol indicates that no asset is registered for the
	// requested (symbol, network) pair. Definitive; not retried.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrResolutionUnavailable indicates that the trade/order ledger or
	// the record store could not be reached. Transient; the next
	// cache-miss attempt retries.
	ErrResolutionUnavailable = errors.New("price resolution unavailable")
)
