package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"habitforge/internal/api"
	entryinadapter "habitforge/internal/modules/entry/adapter/in"
	entryoutadapter "habitforge/internal/modules/entry/adapter/out"
	entryout "habitforge/internal/modules/entry/port/out"
	entryservice "habitforge/internal/modules/entry/service"
	entryusecase "habitforge/internal/modules/entry/usecase"
	progressinadapter "habitforge/internal/modules/progress/adapter/in"
	progressservice "habitforge/internal/modules/progress/service"
	progressusecase "habitforge/internal/modules/progress/usecase"
	"habitforge/internal/platform/clock"
	"habitforge/internal/platform/config"
	"habitforge/internal/platform/id"
	"habitforge/internal/platform/kv"
	"habitforge/internal/platform/logging"
	uiapp "habitforge/internal/ui/app"
)

type App struct {
	Config      config.Config
	Logger      hclog.Logger
	EntryCLI    entryinadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler

	clock clock.Clock
	db    *kv.SQLiteStore
}

// New wires one session. The remote store is attached only when credentials are
// configured; the entry service decides at Init whether it is actually used.
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(cfg.LogLevel, logOut)
	clk := clock.SystemClock{}

	db, err := kv.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	local := entryoutadapter.NewLocalEntryStore(db)
	var remote entryout.EntryStore
	if cfg.RemoteEnabled() {
		remote = entryoutadapter.NewRemoteEntryStore(
			entryoutadapter.RemoteConfig{BaseURL: cfg.Remote.URL, APIKey: cfg.Remote.Key, Timeout: cfg.Remote.Timeout},
			entryoutadapter.NewKVIdentityStore(db),
			id.UserToken{},
		)
	}

	entrySvc := entryservice.NewEntryService(logger.Named("entry"), local, remote)
	entryUC := entryusecase.NewInteractor(entrySvc, clk)
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(clk), entryUC)

	return &App{
		Config:      cfg,
		Logger:      logger,
		EntryCLI:    entryinadapter.NewCLIHandler(entryUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		clock:       clk,
		db:          db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.EntryCLI, app.ProgressCLI, app.clock.Now)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Serve runs the local HTTP API until ctx is cancelled.
func Serve(ctx context.Context, app *App, addr string) error {
	logger := app.Logger.Named("api")
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(logger, app.Config.Server.Token, app.EntryCLI, app.ProgressCLI),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "auth", app.Config.Server.Token != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
