package twitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrUserNotFound is returned by GetUserByUsername when the lookup yields no user.
var ErrUserNotFound = errors.New("user not found")

// APIError is a non-2xx response from the X API.
type APIError struct {
	Endpoint string
	Status   int
	Title    string
	Detail   string
	Body     string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = e.Body
	}
	return fmt.Sprintf("%s HTTP %d: %s", e.Endpoint, e.Status, msg)
}

// newAPIError builds an APIError, pulling title/detail from a v2 problem body
// or the first entry of an "errors" array.
func newAPIError(endpoint string, status int, body []byte) *APIError {
	e := &APIError{Endpoint: endpoint, Status: status, Body: truncateBytes(body, 200)}
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Errors []struct {
			Message string `json:"message"`
			Title   string `json:"title"`
			Detail  string `json:"detail"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &problem) != nil {
		return e
	}
	e.Title, e.Detail = problem.Title, problem.Detail
	if e.Title == "" && e.Detail == "" && len(problem.Errors) > 0 {
		first := problem.Errors[0]
		e.Title = first.Title
		e.Detail = first.Detail
		if e.Detail == "" {
			e.Detail = first.Message
		}
	}
	return e
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsRateLimited reports a 429.
func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

// IsForbidden reports a 403.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsRecoverable reports whether a write failure is authorization or rate-limit class
// (403/429), which callers may log and move past.
func IsRecoverable(err error) bool {
	return IsForbidden(err) || IsRateLimited(err)
}

// parseRateLimitReset parses the x-rate-limit-reset unix timestamp header.
// Falls back to 15 minutes from now if missing or invalid.
func parseRateLimitReset(v string) time.Time {
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(ts, 0)
	}
	return time.Now().Add(15 * time.Minute)
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
