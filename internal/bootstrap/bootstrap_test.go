package bootstrap_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"habitforge/internal/bootstrap"
	"habitforge/internal/platform/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		DataDir:  dir,
		DBPath:   filepath.Join(dir, "habitforge.db"),
		LogLevel: "error",
		Remote:   config.Remote{Timeout: time.Second},
	}
}

func TestNewLocalOnly(t *testing.T) {
	t.Parallel()
	app, err := bootstrap.New(testConfig(t), io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = app.Close() }()

	ctx := context.Background()
	if session := app.EntryCLI.WhoAmI(ctx); session.Mode != "local" {
		t.Fatalf("expected local mode, got %+v", session)
	}
	today := time.Now().Format("2006-01-02")
	if _, err := app.EntryCLI.Log(ctx, today, "GREEN_LIGHT", "", nil, false); err != nil {
		t.Fatalf("log today: %v", err)
	}
	stats, err := app.ProgressCLI.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CurrentStreak != 1 || stats.TotalScore != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestPlaceholderCredentialsStayLocal(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Remote.URL = config.PlaceholderURL
	cfg.Remote.Key = config.PlaceholderKey
	app, err := bootstrap.New(cfg, io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = app.Close() }()
	if session := app.EntryCLI.WhoAmI(context.Background()); session.Mode != "local" {
		t.Fatalf("expected local mode with placeholders, got %+v", session)
	}
}

func TestRemoteCredentialsSelectRemote(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Remote.URL = srv.URL
	cfg.Remote.Key = "anon"
	app, err := bootstrap.New(cfg, io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = app.Close() }()

	session := app.EntryCLI.WhoAmI(context.Background())
	if session.Mode != "remote" || len(session.UserID) <= len("user_") {
		t.Fatalf("expected remote session with identity, got %+v", session)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	t.Parallel()
	app, err := bootstrap.New(testConfig(t), io.Discard)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = app.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bootstrap.Serve(ctx, app, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}
