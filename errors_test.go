package twitter

import (
	"fmt"
	"testing"
	"time"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantTitle  string
		wantDetail string
	}{
		{"problem body", `{"title":"Forbidden","detail":"You are not permitted","status":403}`, "Forbidden", "You are not permitted"},
		{"errors array", `{"errors":[{"message":"Rate limit exceeded"}]}`, "", "Rate limit exceeded"},
		{"errors array with detail", `{"errors":[{"title":"Not Found Error","detail":"gone"}]}`, "Not Found Error", "gone"},
		{"empty errors", `{"errors":[]}`, "", ""},
		{"invalid json", `{invalid`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAPIError("Retweet", 403, []byte(tt.body))
			if e.Title != tt.wantTitle || e.Detail != tt.wantDetail {
				t.Fatalf("newAPIError(%s) = %q/%q, want %q/%q", tt.body, e.Title, e.Detail, tt.wantTitle, tt.wantDetail)
			}
			if e.Status != 403 || e.Endpoint != "Retweet" {
				t.Fatalf("unexpected endpoint/status: %s %d", e.Endpoint, e.Status)
			}
		})
	}
}

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
		rateLimited bool
	}{
		{"403", &APIError{Status: 403}, true, false},
		{"429", &APIError{Status: 429}, true, true},
		{"wrapped 429", fmt.Errorf("Retweet: %w", &APIError{Status: 429}), true, true},
		{"500", &APIError{Status: 500}, false, false},
		{"401", &APIError{Status: 401}, false, false},
		{"plain error", fmt.Errorf("connection reset"), false, false},
		{"nil", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverable(tt.err); got != tt.recoverable {
				t.Fatalf("IsRecoverable = %v, want %v", got, tt.recoverable)
			}
			if got := IsRateLimited(tt.err); got != tt.rateLimited {
				t.Fatalf("IsRateLimited = %v, want %v", got, tt.rateLimited)
			}
		})
	}
}

func TestParseRateLimitReset(t *testing.T) {
	ts := time.Now().Add(5 * time.Minute).Unix()
	result := parseRateLimitReset(fmt.Sprint(ts))
	if result.Unix() != ts {
		t.Fatalf("expected %d, got %d", ts, result.Unix())
	}

	// Empty
	result = parseRateLimitReset("")
	if time.Until(result) < 14*time.Minute {
		t.Fatal("expected ~15min fallback")
	}

	// Invalid
	result = parseRateLimitReset("not-a-number")
	if time.Until(result) < 14*time.Minute {
		t.Fatal("expected ~15min fallback for invalid input")
	}
}
