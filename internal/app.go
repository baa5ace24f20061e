package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitscore/internal/controllers"
	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/storage/interfaces"
	"fitscore/internal/structures"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	WebServer *http.Server

	conf      *structures.Config
	logger    providers.Logger
	scheduler interfaces.SchedulerInterface
	store     models.RecordStoreInterface
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, store models.RecordStoreInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	router.Mount(apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", providers.MetricsMiddleware(metrics, logger, apiMux))

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		scheduler: scheduler,
		store:     store,
	}
}

// Run restores the store, serves HTTP until SIGINT/SIGTERM or ctx is done,
// then drains requests and writes the final snapshot.
func (app *App) Run(ctx context.Context) error {
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)
	if err := app.scheduler.Restore(); err != nil {
		app.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	app.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	app.scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.WebServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}

	return errors.Join(runErr, app.Close())
}

// Close writes the final snapshot and releases the store.
func (app *App) Close() error {
	var errs []error
	if err := app.scheduler.Persist(); err != nil {
		errs = append(errs, fmt.Errorf("persist: %w", err))
	}
	app.scheduler.Close()
	if err := app.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	if len(errs) == 0 {
		app.logger.Infof(providers.TypeApp, "gracefully stopped")
	}
	app.logger.Close()
	return errors.Join(errs...)
}
