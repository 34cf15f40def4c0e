package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/myhebrew-backend/internal/adapter/postgres"
	"github.com/heartmarshall/myhebrew-backend/internal/adapter/postgres/kv"
	"github.com/heartmarshall/myhebrew-backend/internal/adapter/provider/claude"
	"github.com/heartmarshall/myhebrew-backend/internal/config"
	"github.com/heartmarshall/myhebrew-backend/internal/service/navigation"
	"github.com/heartmarshall/myhebrew-backend/internal/service/syllables"
	"github.com/heartmarshall/myhebrew-backend/internal/service/textstate"
	"github.com/heartmarshall/myhebrew-backend/internal/transport/middleware"
	"github.com/heartmarshall/myhebrew-backend/internal/transport/rest"
)

// Run is the application entry point: configuration, logger, database,
// migrations, services, and the HTTP server with graceful shutdown.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	store := kv.New(pool)

	provider, err := claude.New(cfg.Provider, logger)
	providerReady := err == nil
	if err != nil {
		// The engine still serves cache hits; provider calls surface
		// the configuration error per request.
		logger.Warn("provider unavailable", slog.String("error", err.Error()))
		provider = claude.Unconfigured(cfg.Provider, logger)
	}

	textSvc := textstate.NewService(logger, provider, store)
	syllableSvc := syllables.NewService(logger, provider, store)
	navSvc := navigation.NewService(logger, store)

	healthHandler := rest.NewHealthHandler(pool, providerReady, BuildVersion())
	readerHandler := rest.NewReaderHandler(textSvc, syllableSvc, navSvc, cfg.Reader.MaxTextLength, logger)
	mux := rest.NewMux(healthHandler, readerHandler)

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}

	handler := middleware.Wrap(mux, mws...)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
