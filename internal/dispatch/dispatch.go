// Package dispatch performs the retweet-then-two-replies sequence for one item.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	twitter "github.com/anatolykoptev/go-rtbot"
	"github.com/anatolykoptev/go-rtbot/internal/templates"
)

// DefaultDelay separates the retweet from the first reply and the two replies from each other.
const DefaultDelay = 1200 * time.Millisecond

// SocialClient is the subset of the X client the dispatcher writes through.
type SocialClient interface {
	Retweet(ctx context.Context, actorID, tweetID string) error
	Reply(ctx context.Context, text, inReplyTo string) (string, error)
}

// Item is a post to act on. CreatedAt is zero when unknown.
type Item struct {
	ID        string
	Handle    string
	URL       string
	CreatedAt time.Time
}

// Dispatcher runs the action sequence. Zero Rand, Delay and Sleep take defaults.
// Templates may be swapped at runtime with SetTemplates.
type Dispatcher struct {
	Social    SocialClient
	ActorID   string
	Templates templates.Set
	Rand      templates.RandSource
	Delay     time.Duration
	Sleep     func(ctx context.Context, d time.Duration) error

	mu sync.RWMutex
}

// SetTemplates replaces the reply lists used by later Dispatch calls.
func (d *Dispatcher) SetTemplates(s templates.Set) {
	d.mu.Lock()
	d.Templates = s
	d.mu.Unlock()
}

func (d *Dispatcher) currentTemplates() templates.Set {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.Templates
}

// Dispatch retweets item as ActorID, then posts one reply from each template list.
// A 403 or 429 on the retweet is logged and the replies still go out.
func (d *Dispatcher) Dispatch(ctx context.Context, item Item) error {
	log := slog.With(slog.String("tweet_id", item.ID), slog.String("handle", item.Handle))

	if err := d.Social.Retweet(ctx, d.ActorID, item.ID); err != nil {
		if !twitter.IsRecoverable(err) {
			return fmt.Errorf("retweet %s: %w", item.ID, err)
		}
		log.Warn("retweet skipped", slog.Int("status", twitter.StatusCode(err)), slog.Any("error", err))
	} else {
		log.Info("retweeted")
	}

	set := d.currentTemplates()
	for i, list := range [][]string{set.Retweet, set.Tag} {
		if len(list) == 0 {
			return fmt.Errorf("reply %d for %s: %w", i+1, item.ID, templates.ErrEmptyList)
		}
		if err := d.sleep(ctx); err != nil {
			return err
		}
		text := templates.Fill(templates.Pick(d.rand(), list), item.Handle, item.URL)
		replyID, err := d.Social.Reply(ctx, text, item.ID)
		if err != nil {
			return fmt.Errorf("reply %d to %s: %w", i+1, item.ID, err)
		}
		log.Info("reply posted", slog.Int("n", i+1), slog.String("reply_id", replyID))
	}
	return nil
}

func (d *Dispatcher) rand() templates.RandSource {
	if d.Rand != nil {
		return d.Rand
	}
	return templates.DefaultSource
}

func (d *Dispatcher) sleep(ctx context.Context) error {
	delay := d.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	if d.Sleep != nil {
		return d.Sleep(ctx, delay)
	}
	return Sleep(ctx, delay)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
