package twitter

import "github.com/anatolykoptev/go-stealth/ratelimit"

// ClientConfig holds all configuration for the X API client.
type ClientConfig struct {
	// Auth signs every request. Required.
	Auth Authorizer

	// APIBase overrides the API root. Default: DefaultAPIBase.
	APIBase string

	// Proxy is an optional proxy URL for the default transport.
	Proxy string

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// Transport replaces the default stealth HTTP client. Used by tests.
	Transport Doer

	// RateLimit configures the per-endpoint limiter that remembers 429 responses.
	RateLimit ratelimit.Config
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RateLimit.RequestsPerWindow == 0 {
		cfg.RateLimit = ratelimit.DefaultConfig
	}
}
