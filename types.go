package twitter

import "time"

// User represents an X account as returned by the v2 user lookup.
type User struct {
	ID       string
	Username string
	Name     string
}

// Tweet represents a single post from a user timeline.
type Tweet struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time // zero when the API did not return created_at
}

// TimelineOptions bounds a single user-timeline page.
type TimelineOptions struct {
	// SinceID restricts results to posts newer than this ID. Empty means no bound.
	SinceID string

	// MaxResults is clamped to the API range [5, 100].
	MaxResults int
}
