package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go-rtbot/internal/bot"
)

type fakeRunner struct {
	res   bot.Result
	err   error
	calls int
}

func (f *fakeRunner) Run(context.Context) (bot.Result, error) {
	f.calls++
	return f.res, f.err
}

func serve(t *testing.T, r Runner, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewMux(r, 0).ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRunOK(t *testing.T) {
	for _, path := range []string{"/run", "/"} {
		r := &fakeRunner{res: bot.Result{Processed: 3, Actions: 2}}
		rec := serve(t, r, http.MethodPost, path)

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"processed":3,"actions":2}`, rec.Body.String())
		assert.Equal(t, 1, r.calls)
	}
}

func TestRunBusy(t *testing.T) {
	rec := serve(t, &fakeRunner{err: bot.ErrBusy}, http.MethodGet, "/run")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"run in progress"}`, rec.Body.String())
}

func TestRunFailure(t *testing.T) {
	rec := serve(t, &fakeRunner{err: errors.New("search mailbox: unauthorized")}, http.MethodGet, "/run")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "unauthorized")
}

func TestMethodNotAllowed(t *testing.T) {
	r := &fakeRunner{}
	rec := serve(t, r, http.MethodDelete, "/run")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Zero(t, r.calls)
}

func TestHealthAndUnknownPath(t *testing.T) {
	r := &fakeRunner{}
	rec := serve(t, r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = serve(t, r, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, r.calls)
}

func TestRunRateLimited(t *testing.T) {
	r := &fakeRunner{res: bot.Result{Processed: 1}}
	mux := NewMux(r, time.Hour)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/run", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/run", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 1, r.calls)
}

type blockingRunner struct {
	started chan struct{}
	finish  chan struct{}
}

func (b *blockingRunner) Run(context.Context) (bot.Result, error) {
	close(b.started)
	<-b.finish
	return bot.Result{}, nil
}

func TestConcurrentRunGetsConflict(t *testing.T) {
	r := &blockingRunner{started: make(chan struct{}), finish: make(chan struct{})}
	mux := NewMux(r, 0)

	first := make(chan int, 1)
	go func() {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/run", nil))
		first <- rec.Code
	}()
	<-r.started

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/run", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"run in progress"}`, rec.Body.String())

	close(r.finish)
	assert.Equal(t, http.StatusOK, <-first)
}
