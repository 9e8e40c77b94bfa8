// Package server runs an HTTP handler until its context is cancelled.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/janrain/pkg/logger"
)

const (
	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
)

// Hook runs during shutdown, after the server stops accepting requests.
type Hook func(ctx context.Context) error

// Config configures Run.
type Config struct {
	Addr            string
	Handler         http.Handler
	Logger          *slog.Logger
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	ShutdownHooks   []Hook

	// Listener overrides Addr when set.
	Listener net.Listener
}

// Run serves cfg.Handler until ctx is done, then shuts the server down
// and runs the shutdown hooks in order.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNope()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	ln := cfg.Listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", cfg.Addr); err != nil {
			return err
		}
	}

	// Requests keep ctx values but are not cancelled with it; Shutdown drains them.
	baseCtx := context.WithoutCancel(ctx)
	srv := &http.Server{
		Handler:           cfg.Handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		IdleTimeout:       defaultIdleTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(ctx, "server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.InfoContext(ctx, "shutting down server")

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		errs := []error{srv.Shutdown(sctx)}
		for _, hook := range cfg.ShutdownHooks {
			if err := hook(sctx); err != nil {
				log.ErrorContext(sctx, "shutdown hook failed", logger.Error(err))
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
