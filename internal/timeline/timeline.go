// Package timeline decides which posts from a user timeline are still worth acting on.
package timeline

import (
	"time"

	twitter "github.com/anatolykoptev/go-rtbot"
)

// FreshnessWindow is the maximum age of a post that still counts as newly published.
const FreshnessWindow = 6 * time.Minute

// IsFresh reports whether createdAt lies within window of now.
// A zero createdAt is never fresh.
func IsFresh(createdAt, now time.Time, window time.Duration) bool {
	if createdAt.IsZero() {
		return false
	}
	return now.Sub(createdAt) <= window
}

// Fresh returns the tweets that pass IsFresh, preserving order.
func Fresh(tweets []*twitter.Tweet, now time.Time, window time.Duration) []*twitter.Tweet {
	var out []*twitter.Tweet
	for _, t := range tweets {
		if t != nil && IsFresh(t.CreatedAt, now, window) {
			out = append(out, t)
		}
	}
	return out
}

// Newest returns the tweet with the most recent CreatedAt, falling back to the
// highest numeric ID when timestamps tie or are missing. nil for an empty slice.
func Newest(tweets []*twitter.Tweet) *twitter.Tweet {
	var best *twitter.Tweet
	for _, t := range tweets {
		if t == nil {
			continue
		}
		if best == nil || newer(t, best) {
			best = t
		}
	}
	return best
}

func newer(a, b *twitter.Tweet) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return idLess(b.ID, a.ID)
}

// idLess compares decimal snowflake IDs without parsing them.
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
