// Command rtbot-timeline polls one account and reposts its newest post with two replies.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anatolykoptev/go-rtbot/internal/bot"
	"github.com/anatolykoptev/go-rtbot/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bot.SetupLogging("info")
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	bot.SetupLogging(cfg.LogLevel)
	if err := cfg.Validate(config.FlowTimeline); err != nil {
		slog.Error("invalid config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tl, err := bot.NewTimeline(cfg)
	if err != nil {
		slog.Error("setup", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("start", slog.String("target", cfg.TargetUsername), slog.String("policy", cfg.TimelinePolicy))
	item, err := tl.Run(ctx)
	switch {
	case errors.Is(err, bot.ErrBusy):
		slog.Info("another run holds the lock, exiting")
	case err != nil:
		slog.Error("run failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	case item != nil:
		slog.Info("done", slog.String("tweet_id", item.ID))
	}
}
