package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/config"
	"github.com/marcelsud/bookshelf-api/internal/backend"
	"github.com/marcelsud/bookshelf-api/internal/http/chi"
	"github.com/marcelsud/bookshelf-api/metrics"
	"github.com/marcelsud/bookshelf-api/user"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/* “a porta de entrada e saída da minha aplicação”
* É no main.go que é feita toda a “amarração” dos demais pacotes:
* config, backend de armazenamento, serviços, métricas e os dois listeners HTTP.
 */

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	logger := httplog.NewLogger("bookshelf-api", httplog.Options{
		JSON:     cfg.LogJSON,
		LogLevel: cfg.LogLevel,
		Concise:  !cfg.LogJSON,
	})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	stores, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			logger.Error().Err(err).Msg("closing storage")
		}
	}()

	bookService := book.NewService(stores.Books)
	userService := user.NewService(stores.Users)

	collector := metrics.NewStoreCollector(map[string]metrics.Counter{
		"books": bookService,
		"users": userService,
	})
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		return err
	}
	defer exporter.Shutdown(context.Background())

	apiServer := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler: chi.Handlers(ctx, bookService, userService, chi.Options{
			Logger: logger,
			APIKey: cfg.APIKey,
			Scheme: stores.Scheme(),
			Errors: exporter,
		}),
	}
	opsServer := &http.Server{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Addr:         ":" + cfg.MetricsPort,
		Handler:      chi.OpsHandlers(collector, exporter.ServeHTTP()),
	}

	errs := make(chan error, 2)
	for _, srv := range []*http.Server{apiServer, opsServer} {
		go func(srv *http.Server) {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("serving on %s: %w", srv.Addr, err)
			}
		}(srv)
	}
	logger.Info().
		Str("port", cfg.Port).
		Str("metrics_port", cfg.MetricsPort).
		Str("backend", cfg.StorageBackend.String()).
		Msg("listening")

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errs:
	}
	return errors.Join(serveErr, shutdown(logger, apiServer, opsServer))
}

func shutdown(logger zerolog.Logger, servers ...*http.Server) error {
	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	logger.Info().Msg("shutting down server")
	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctxTimeout); err != nil {
			errs = append(errs, fmt.Errorf("forcing close of %s: %w", srv.Addr, err))
		}
	}
	return errors.Join(errs...)
}
