package bot

import (
	"context"
	"errors"

	twitter "github.com/anatolykoptev/go-rtbot"
	"github.com/anatolykoptev/go-rtbot/internal/dispatch"
)

type fakeTimeline struct {
	user      *twitter.User
	userErr   error
	tweets    []*twitter.Tweet
	tweetsErr error
	gotOpts   []twitter.TimelineOptions
}

func (f *fakeTimeline) GetUserByUsername(_ context.Context, username string) (*twitter.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakeTimeline) GetUserTweets(_ context.Context, _ string, opts twitter.TimelineOptions) ([]*twitter.Tweet, error) {
	f.gotOpts = append(f.gotOpts, opts)
	return f.tweets, f.tweetsErr
}

type fakeActor struct {
	items  []dispatch.Item
	err    error
	onCall func(dispatch.Item)
}

func (f *fakeActor) Dispatch(_ context.Context, item dispatch.Item) error {
	if f.onCall != nil {
		f.onCall(item)
	}
	f.items = append(f.items, item)
	return f.err
}

type busyLock struct{}

func (busyLock) TryLock(string) (func(), bool, error) { return nil, false, nil }

type brokenLock struct{}

func (brokenLock) TryLock(string) (func(), bool, error) {
	return nil, false, errors.New("permission denied")
}
