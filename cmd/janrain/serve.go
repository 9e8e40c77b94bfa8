package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/janrain/internal/config"
	"github.com/dmitrymomot/janrain/internal/server"
	"github.com/dmitrymomot/janrain/pkg/accounts"
	"github.com/dmitrymomot/janrain/pkg/accounts/pgstore"
	"github.com/dmitrymomot/janrain/pkg/accounts/redisstore"
	"github.com/dmitrymomot/janrain/pkg/cookie"
	"github.com/dmitrymomot/janrain/pkg/db"
	"github.com/dmitrymomot/janrain/pkg/handler"
	"github.com/dmitrymomot/janrain/pkg/health"
	"github.com/dmitrymomot/janrain/pkg/janrain"
	"github.com/dmitrymomot/janrain/pkg/logger"
	"github.com/dmitrymomot/janrain/pkg/redis"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the sign-in views, probes and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.Logger, handler.RequestIDExtractor)
	defer logger.Flush(2 * time.Second)

	store, checks, hooks, err := openStore(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "open user store", logger.Error(err))
		return err
	}

	client, err := janrain.New(cfg.Janrain,
		janrain.WithLogger(log),
		janrain.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
	if err != nil {
		return err
	}

	cookies, err := cookie.New(cfg.Session.Secret,
		cookie.WithDomain(cfg.Session.Domain),
		cookie.WithSecure(cfg.Session.Secure),
	)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	views := handler.New(client,
		accounts.NewBackend(store, accounts.WithLogger(log)),
		handler.NewCookieSessions(cookies, cfg.Session.Name, cfg.Session.TTL),
		handler.WithLogger(log),
		handler.WithMetrics(handler.NewMetrics(reg)),
		handler.WithWidgets(cfg.Widget),
	)

	probes := health.New(append(checks, health.WithLogger(log))...)

	r := chi.NewRouter()
	r.Use(handler.RequestID, middleware.RealIP, handler.Recover(log))
	r.Get("/health/live", probes.Live)
	r.Get("/health/ready", probes.Ready)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Mount(cfg.Widget.MountPath, views.Routes())

	return server.Run(ctx, server.Config{
		Addr:            cfg.HTTP.Addr,
		Handler:         r,
		Logger:          log,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		ShutdownHooks:   hooks,
	})
}

// openStore returns the configured user store with its readiness checks
// and shutdown hooks.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (accounts.Store, []health.Option, []server.Hook, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := db.Connect(ctx, *cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Migrate(ctx, pool, pgstore.Migrations(), cfg.Database.MigrationsTable, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return pgstore.New(pool),
			[]health.Option{health.WithCheck("postgres", db.Healthcheck(pool))},
			[]server.Hook{func(context.Context) error { pool.Close(); return nil }},
			nil

	case config.StoreRedis:
		client, err := redis.Open(ctx, *cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		return redisstore.New(client, cfg.Redis.KeyPrefix),
			[]health.Option{health.WithCheck("redis", redis.Healthcheck(client))},
			[]server.Hook{func(context.Context) error { return client.Close() }},
			nil

	case config.StoreMemory:
		log.WarnContext(ctx, "using in-memory user store; users are lost on restart")
		return accounts.NewMemoryStore(), nil, nil, nil
	}
	return nil, nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidStore, cfg.Store)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL user store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				return fmt.Errorf("migrate: USER_STORE is %q, not %q", cfg.Store, config.StorePostgres)
			}

			log := logger.New(cfg.Logger)
			pool, err := db.Connect(ctx, *cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()
			return db.Migrate(ctx, pool, pgstore.Migrations(), cfg.Database.MigrationsTable, log)
		},
	}
}
