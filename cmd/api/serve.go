package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/geocoder89/meetuphub/internal/auth"
	"github.com/geocoder89/meetuphub/internal/cache"
	"github.com/geocoder89/meetuphub/internal/config"
	"github.com/geocoder89/meetuphub/internal/db"
	httpx "github.com/geocoder89/meetuphub/internal/http"
	"github.com/geocoder89/meetuphub/internal/http/handlers"
	"github.com/geocoder89/meetuphub/internal/observability"
	"github.com/geocoder89/meetuphub/internal/repo/cached"
	"github.com/geocoder89/meetuphub/internal/repo/memory"
	"github.com/geocoder89/meetuphub/internal/repo/postgres"
	"github.com/geocoder89/meetuphub/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfg)
		},
	}
}

func runServe(parent context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	shutdownTracer, err := observability.InitTracer(ctx, "meetuphub", cfg.OtelExporter, cfg.OtelEndpoint)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(tctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	deps, cleanup, err := buildDeps(ctx, cfg, log, prom)
	if err != nil {
		return err
	}
	defer cleanup()

	router := httpx.NewRouter(log, cfg, deps)
	srv := httpx.NewServer(fmt.Sprintf(":%d", cfg.Port), router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server shutting down")

	sctx, cancel := config.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}

// buildDeps selects the store and cache backends and assembles the services.
func buildDeps(ctx context.Context, cfg config.Config, log *slog.Logger, prom *observability.Prom) (httpx.Deps, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	pings := map[string]handlers.PingFunc{}

	var (
		registrations service.RegistrationRepository
		meetups       service.MeetupRepository
	)

	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		registrations = store.Registrations()
		meetups = store.Meetups()

	case config.StorePostgres:
		if cfg.MigrateOnStart {
			if err := migrateUp(cfg.DBURL, log); err != nil {
				return httpx.Deps{}, cleanup, err
			}
		}

		pool, err := db.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
		if err != nil {
			return httpx.Deps{}, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		pings["postgres"] = pool.Ping

		registrations = postgres.NewRegistrationsRepo(pool, prom)
		meetups = postgres.NewMeetupsRepo(pool, prom)

	default:
		return httpx.Deps{}, cleanup, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	var store cache.Store
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		closers = append(closers, func() { _ = rdb.Close() })
		pings["redis"] = rdb.Ping
		store = rdb
	} else {
		store = cache.NewMemory(cfg.CacheTTL)
	}
	meetups = cached.NewMeetupsRepo(meetups, store, prom, log)

	deps := httpx.Deps{
		Registrations: service.NewRegistrationService(registrations),
		Meetups:       service.NewMeetupService(meetups, registrations),
		Prom:          prom,
		Pings:         pings,
	}

	if cfg.JWTSecret != "" {
		deps.Auth = auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	} else {
		log.Warn("JWT_SECRET not set, write routes are unauthenticated")
	}

	return deps, cleanup, nil
}
