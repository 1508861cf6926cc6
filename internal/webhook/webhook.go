// Package webhook exposes one mail pass per HTTP request.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go-rtbot/internal/bot"
)

// Runner performs one mail pass. *bot.Mail satisfies it.
type Runner interface {
	Run(ctx context.Context) (bot.Result, error)
}

type errorBody struct {
	Error string `json:"error"`
}

// NewMux routes /run (GET or POST) to a mail pass and /health to a liveness probe.
// The root path also runs a pass, matching a bare serverless URL.
// Passes start at most once per minInterval (0 disables the limit); a request that
// arrives while one is running gets 409.
func NewMux(r Runner, minInterval time.Duration) *http.ServeMux {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	h := runHandler(r, semaphore.NewWeighted(1), rate.NewLimiter(limit, 1))
	run := methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  h,
		http.MethodPost: h,
	})
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	mux.HandleFunc("/run", run)
	mux.HandleFunc("/{$}", run)
	return mux
}

func runHandler(r Runner, running *semaphore.Weighted, limiter *rate.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if !running.TryAcquire(1) {
			WriteJSON(w, http.StatusConflict, errorBody{Error: bot.ErrBusy.Error()})
			return
		}
		defer running.Release(1)
		if !limiter.Allow() {
			WriteJSON(w, http.StatusTooManyRequests, errorBody{Error: "too many runs, try later"})
			return
		}

		start := time.Now()
		res, err := r.Run(req.Context())
		switch {
		case errors.Is(err, bot.ErrBusy):
			WriteJSON(w, http.StatusConflict, errorBody{Error: bot.ErrBusy.Error()})
		case err != nil:
			slog.Error("mail pass failed", slog.Any("error", err), slog.Int("actions", res.Actions))
			WriteJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		default:
			slog.Info("mail pass", slog.Int("processed", res.Processed), slog.Int("actions", res.Actions),
				slog.Duration("took", time.Since(start)))
			WriteJSON(w, http.StatusOK, res)
		}
	}
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// NewServer returns an http.Server for addr with conservative header timeouts.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
