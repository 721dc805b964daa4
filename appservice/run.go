package appservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kindredhq/kindred/internal/api"
	"github.com/kindredhq/kindred/internal/config"
	"github.com/kindredhq/kindred/internal/health"
	"github.com/kindredhq/kindred/internal/logger"
	"github.com/kindredhq/kindred/internal/services"
	"github.com/kindredhq/kindred/internal/store"
	"github.com/kindredhq/kindred/internal/store/postgres"
	"github.com/kindredhq/kindred/internal/store/sqlite"
)

// Run starts the Kindred HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("kindred-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Kindred service starting")

	// Root context cancelled on SIGINT/SIGTERM.
	ctx, stop := newServerContext()
	defer stop()

	st, err := newStore(cfg, log)
	if err != nil {
		return err
	}

	router := api.NewRouter(st)

	svcHealth := startHealthCheckers(ctx, cfg, log, st)

	// Block startup until the store reports healthy; fail fast otherwise.
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	startMaintenance(ctx, cfg, log, st)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newStore opens the configured database backend.
func newStore(cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			log.Error().Stack().Err(err).Msg("Postgres unavailable")
			return nil, err
		}
		return postgres.NewWithDB(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Error().Stack().Err(err).Msg("SQLite unavailable")
			return nil, err
		}
		if err := sqlite.Migrate(db); err != nil {
			log.Error().Stack().Err(err).Msg("SQLite migration failed")
			return nil, err
		}
		return sqlite.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

// startHealthCheckers starts the store checker and the service-level
// aggregator, and binds the /api/health flag.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

// startMaintenance launches the background loops: expired-session purge and
// the past-due goal sweep.
func startMaintenance(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) {
	sessions := services.NewSessionService(st)
	goals := services.NewGoalService(st)

	purgeInterval := time.Duration(cfg.SessionPurgeIntervalMinutes) * time.Minute
	sweepInterval := time.Duration(cfg.GoalSweepIntervalMinutes) * time.Minute

	go runEvery(ctx, purgeInterval, func() {
		n, err := sessions.PurgeExpired(ctx)
		if err != nil {
			log.Error().Stack().Err(err).Msg("session purge failed")
			return
		}
		if n > 0 {
			log.Info().Int("count", n).Msg("purged expired sessions")
		}
	})

	go runEvery(ctx, sweepInterval, func() {
		n, err := goals.SweepPastDue(ctx)
		if err != nil {
			log.Error().Stack().Err(err).Msg("goal sweep failed")
			return
		}
		if n > 0 {
			log.Info().Int("count", n).Msg("marked goals past due")
		}
	})
}

func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
