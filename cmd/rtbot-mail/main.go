// Command rtbot-mail scans recent mail for status links and acts on each one.
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
	if err := cfg.Validate(config.FlowMail); err != nil {
		slog.Error("invalid config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := bot.NewMail(ctx, cfg)
	if err != nil {
		slog.Error("setup", slog.Any("error", err))
		os.Exit(1)
	}

	res, err := m.Run(ctx)
	switch {
	case errors.Is(err, bot.ErrBusy):
		slog.Info("another run holds the lock, exiting")
	case err != nil:
		slog.Error("run failed", slog.Any("error", err), slog.Int("actions", res.Actions))
		stop()
		os.Exit(1)
	}
}
