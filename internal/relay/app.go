// Package relay runs the sync relay service: a small HTTP server over a
// PostgreSQL table of last-write-wins rows that devices push to and pull
// from.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/vkuznecovs/minutekeeper/internal/logging"
	"github.com/vkuznecovs/minutekeeper/internal/relay/config"
	"github.com/vkuznecovs/minutekeeper/internal/relay/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  store.Store
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	st, err := store.NewPostgresStore(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{config: c, logger: logger, store: st}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting relay", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	server := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: NewHTTPServer(app.store, app.config.AuthToken, app.config.CORSOrigin, app.logger).Handler(),
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
	}
	if err := app.store.Close(); err != nil {
		app.logger.Error(shutdownCtx, "store close error", "error", err.Error())
	}

	wg.Wait()

	app.logger.Info(context.Background(), "relay stopped")
}
