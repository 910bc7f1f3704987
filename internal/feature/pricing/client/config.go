// Package client provides an HTTP client for the price resolution API,
// for services that consume prices remotely instead of linking the
// resolver in-process.
package client

import (
	"os"
	"time"
)

// Config holds configuration for the price API client.
type Config struct {
	BaseURL      string        // Base URL of the pricing service (e.g., "http://pricing:8080")
	ServiceToken string        // Bearer token for the /internal endpoints
	Timeout      time.Duration // HTTP request timeout
}

// LoadConfig loads price API client configuration from environment variables.
func LoadConfig() Config {
	return Config{
		BaseURL:      os.Getenv("PRICE_API_BASE_URL"),
		ServiceToken: os.Getenv("PRICE_API_SERVICE_TOKEN"),
		Timeout:      10 * time.Second,
	}
}
