package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
)

// do executes a single signed request. There is no retry: a non-2xx status
// becomes an *APIError, a 429 additionally blocks the endpoint until its reset time.
func (c *Client) do(ctx context.Context, ep Endpoint, rawURL string, query map[string]string, payload any) ([]byte, error) {
	endpoint, method := ep.Name, ep.Method
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.limiter.IsRateLimited(endpoint) {
		slog.Debug("endpoint rate limited, skipping call", slog.String("endpoint", endpoint))
		return nil, &APIError{
			Endpoint: endpoint,
			Status:   http.StatusTooManyRequests,
			Detail:   "rate limited until " + c.limiter.AvailableAt(endpoint).Format("15:04:05"),
		}
	}

	fullURL := rawURL
	if len(query) > 0 {
		fullURL += "?" + encodeQuery(query)
	}

	authz, err := c.auth.Authorize(method, fullURL, query)
	if err != nil {
		return nil, fmt.Errorf("%s: authorize: %w", endpoint, err)
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal payload: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	respBody, respHdrs, status, err := c.http.DoWithHeaderOrder(method, fullURL, apiHeaders(authz, c.cfg.UserAgent, payload != nil), body, apiHeaderOrder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	if status == http.StatusTooManyRequests {
		c.limiter.MarkRateLimited(endpoint, parseRateLimitReset(respHdrs["x-rate-limit-reset"]))
	}
	if status < 200 || status > 299 {
		slog.Warn("api call failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", status),
			slog.String("body", truncateBytes(respBody, 500)))
		return nil, newAPIError(endpoint, status, respBody)
	}
	return respBody, nil
}

// encodeQuery renders params sorted by key with RFC 3986 escaping, matching what the signer signs.
func encodeQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = PercentEncode(k) + "=" + PercentEncode(params[k])
	}
	return strings.Join(parts, "&")
}
