package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/anatolykoptev/go-rtbot/internal/dispatch"
	"github.com/anatolykoptev/go-rtbot/internal/extract"
	"github.com/anatolykoptev/go-rtbot/internal/mailbox"
)

// Result summarises one mail pass.
type Result struct {
	Processed int `json:"processed"`
	Actions   int `json:"actions"`
}

// Mail scans recent messages for status links and acts on each distinct status once per run.
type Mail struct {
	Mailbox mailbox.Mailbox
	Lock    Locker
	Actor   Actor
	Query   string
}

// Run performs one pass. On error the partial Result is still returned.
func (m *Mail) Run(ctx context.Context) (Result, error) {
	var res Result
	release, err := acquire(m.Lock, "mail")
	if err != nil {
		return res, err
	}
	defer release()
	if c, ok := m.Mailbox.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				slog.Debug("close mailbox", slog.Any("error", err))
			}
		}()
	}

	ids, err := m.Mailbox.Search(ctx, m.Query)
	if err != nil {
		return res, fmt.Errorf("search mailbox: %w", err)
	}
	res.Processed = len(ids)

	seenMsg := make(map[string]bool, len(ids))
	seenStatus := make(map[string]bool)
	for _, id := range ids {
		if seenMsg[id] {
			continue
		}
		seenMsg[id] = true

		body, err := m.Mailbox.FetchBody(ctx, id)
		if err != nil {
			return res, fmt.Errorf("fetch message %s: %w", id, err)
		}
		for _, link := range extract.Links(body) {
			if seenStatus[link.ID] {
				slog.Debug("status already handled this run", slog.String("tweet_id", link.ID), slog.String("message_id", id))
				continue
			}
			seenStatus[link.ID] = true

			item := dispatch.Item{ID: link.ID, Handle: link.Handle, URL: extract.StatusURL(link.Handle, link.ID)}
			if err := m.Actor.Dispatch(ctx, item); err != nil {
				return res, err
			}
			res.Actions++
		}
	}
	slog.Info("mail pass done", slog.Int("processed", res.Processed), slog.Int("actions", res.Actions))
	return res, nil
}
