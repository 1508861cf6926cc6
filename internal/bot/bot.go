// Package bot runs one pass of the timeline or mail flow.
package bot

import (
	"context"
	"errors"

	twitter "github.com/anatolykoptev/go-rtbot"
	"github.com/anatolykoptev/go-rtbot/internal/dispatch"
)

var (
	// ErrTargetNotFound means the watched username did not resolve to an account.
	ErrTargetNotFound = errors.New("target not found")

	// ErrBusy means another run holds the lock. Callers treat it as a clean no-op.
	ErrBusy = errors.New("run in progress")
)

// TimelineClient reads a user's posts.
type TimelineClient interface {
	GetUserByUsername(ctx context.Context, username string) (*twitter.User, error)
	GetUserTweets(ctx context.Context, userID string, opts twitter.TimelineOptions) ([]*twitter.Tweet, error)
}

// Actor performs the action sequence for one item. *dispatch.Dispatcher satisfies it.
type Actor interface {
	Dispatch(ctx context.Context, item dispatch.Item) error
}

// Locker hands out non-blocking named locks. *cursor.Store satisfies it.
type Locker interface {
	TryLock(name string) (release func(), ok bool, err error)
}

func acquire(l Locker, name string) (func(), error) {
	release, ok, err := l.TryLock(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBusy
	}
	return release, nil
}
