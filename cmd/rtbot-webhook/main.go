// Command rtbot-webhook serves one mail pass per request on $PORT.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-rtbot/internal/bot"
	"github.com/anatolykoptev/go-rtbot/internal/config"
	"github.com/anatolykoptev/go-rtbot/internal/dispatch"
	"github.com/anatolykoptev/go-rtbot/internal/templates"
	"github.com/anatolykoptev/go-rtbot/internal/webhook"
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

	// Long-lived process: pick up template edits without a restart.
	if d, ok := m.Actor.(*dispatch.Dispatcher); ok {
		go func() {
			err := templates.Watch(ctx, cfg.RTListPath, cfg.TagListPath, d.SetTemplates)
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("template watch stopped", slog.Any("error", err))
			}
		}()
	}

	srv := webhook.NewServer(net.JoinHostPort("", cfg.Port), webhook.NewMux(m, cfg.WebhookMinInterval))
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("serve", slog.Any("error", err))
		os.Exit(1)
	}
}
