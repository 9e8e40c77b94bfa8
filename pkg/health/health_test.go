package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/janrain/pkg/health"
)

func TestHandler_Live(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.New().Live(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestHandler_Ready(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all healthy", func(t *testing.T) {
		t.Parallel()
		h := health.New(health.WithCheck("postgres", ok), health.WithCheck("redis", ok))

		rec := httptest.NewRecorder()
		h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("one failing check", func(t *testing.T) {
		t.Parallel()
		h := health.New(health.WithCheck("postgres", ok), health.WithCheck("redis", down))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.Header.Set("Accept", "application/json")
		h.Ready(rec, req)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var report health.Report
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
		require.Equal(t, health.StatusUnhealthy, report.Status)
		require.Equal(t, health.StatusHealthy, report.Checks["postgres"])
		require.Equal(t, "connection refused", report.Checks["redis"])
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		slow := func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}
		h := health.New(health.WithCheck("slow", slow), health.WithTimeout(20*time.Millisecond))

		report := h.Run(context.Background())
		require.Equal(t, health.StatusUnhealthy, report.Status)
	})

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.New().Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})
}
