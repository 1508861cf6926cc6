package twitter

import (
	"errors"
	"fmt"
	"io"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// Doer executes one HTTP request and returns body, lower-cased response headers and status.
// *stealth.BrowserClient satisfies it.
type Doer interface {
	DoWithHeaderOrder(method, url string, headers map[string]string, body io.Reader, order []string) ([]byte, map[string]string, int, error)
}

// Client is a minimal X API v2 client: user lookup, user timeline, retweet and reply.
// Every call is attempted exactly once.
type Client struct {
	http    Doer
	auth    Authorizer
	limiter *ratelimit.Limiter
	cfg     ClientConfig
}

// NewClient creates a client. cfg.Auth is required.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Auth == nil {
		return nil, errors.New("twitter client: no authorizer configured")
	}
	cfg.defaults()

	transport := cfg.Transport
	if transport == nil {
		opts := []stealth.ClientOption{
			stealth.WithHeaderOrder(apiHeaderOrder),
		}
		if cfg.Proxy != "" {
			opts = append(opts, stealth.WithProxy(cfg.Proxy))
		}
		bc, err := stealth.NewClient(opts...)
		if err != nil {
			return nil, fmt.Errorf("stealth client: %w", err)
		}
		transport = bc
	}

	return &Client{
		http:    transport,
		auth:    cfg.Auth,
		limiter: ratelimit.NewLimiter(cfg.RateLimit),
		cfg:     cfg,
	}, nil
}
