package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	twitter "github.com/anatolykoptev/go-rtbot"
	"github.com/anatolykoptev/go-rtbot/internal/config"
	"github.com/anatolykoptev/go-rtbot/internal/dispatch"
	"github.com/anatolykoptev/go-rtbot/internal/extract"
	"github.com/anatolykoptev/go-rtbot/internal/timeline"
)

// timelinePage is the smallest page the API accepts.
const timelinePage = 5

// CursorStore persists the last processed ID per target. *cursor.Store satisfies it.
type CursorStore interface {
	Locker
	Read(target string) (string, bool)
	Write(target, id string) error
}

// Timeline polls one account and acts on at most its newest new post per run.
type Timeline struct {
	Client TimelineClient
	Cursor CursorStore
	Actor  Actor

	Target string
	// Policy is config.PolicySinceID or config.PolicyFreshness.
	Policy string
	Now    func() time.Time
}

// Run performs one poll. It returns the item acted on, or nil when nothing was new.
// The cursor is written before any action so a failed action is never repeated.
func (t *Timeline) Run(ctx context.Context) (*dispatch.Item, error) {
	release, err := acquire(t.Cursor, "timeline_"+t.Target)
	if err != nil {
		return nil, err
	}
	defer release()

	user, err := t.Client.GetUserByUsername(ctx, t.Target)
	if err != nil {
		if errors.Is(err, twitter.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, t.Target)
		}
		return nil, fmt.Errorf("resolve %s: %w", t.Target, err)
	}

	prev, _ := t.Cursor.Read(t.Target)
	tweets, err := t.Client.GetUserTweets(ctx, user.ID, twitter.TimelineOptions{
		SinceID:    prev,
		MaxResults: timelinePage,
	})
	if err != nil {
		return nil, fmt.Errorf("timeline %s: %w", t.Target, err)
	}

	if t.Policy == config.PolicyFreshness {
		tweets = timeline.Fresh(tweets, t.now(), timeline.FreshnessWindow)
	}
	newest := timeline.Newest(tweets)
	if newest == nil || newest.ID == prev {
		slog.Info("nothing new", slog.String("target", t.Target), slog.String("since_id", prev), slog.String("policy", t.Policy))
		return nil, nil
	}

	if err := t.Cursor.Write(t.Target, newest.ID); err != nil {
		return nil, err
	}

	item := dispatch.Item{
		ID:        newest.ID,
		Handle:    t.Target,
		URL:       extract.StatusURL(t.Target, newest.ID),
		CreatedAt: newest.CreatedAt,
	}
	return &item, t.Actor.Dispatch(ctx, item)
}

func (t *Timeline) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}
