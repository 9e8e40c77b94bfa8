package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/janrain/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	defaultTimeout = 5 * time.Second
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Report is the JSON body of a probe response.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler serves the liveness and readiness probes.
type Handler struct {
	checks  map[string]Check
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithTimeout bounds a whole readiness run.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger sets the logger used for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithCheck registers a named readiness check.
func WithCheck(name string, c Check) Option {
	return func(h *Handler) {
		if c != nil {
			h.checks[name] = c
		}
	}
}

// New creates a Handler.
func New(opts ...Option) *Handler {
	h := &Handler{
		checks:  make(map[string]Check),
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Live always reports healthy.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, Report{Status: StatusHealthy})
}

// Ready runs every check concurrently and reports 503 if any fails.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	report := h.Run(r.Context())
	status := http.StatusOK
	if report.Status != StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	respond(w, r, status, report)
}

// Run executes all checks and aggregates the result.
func (h *Handler) Run(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		report = Report{Status: StatusHealthy, Checks: make(map[string]string, len(h.checks))}
	)

	// Checks never return an error to the group so one failure does not cancel the rest.
	var g errgroup.Group
	for name, check := range h.checks {
		g.Go(func() error {
			result := StatusHealthy
			if err := check(ctx); err != nil {
				result = err.Error()
				h.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					logger.Error(err),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = result
			if result != StatusHealthy {
				report.Status = StatusUnhealthy
			}
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func respond(w http.ResponseWriter, r *http.Request, status int, report Report) {
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte("Service Unavailable"))
}
