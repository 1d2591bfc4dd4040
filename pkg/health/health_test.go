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

	"github.com/dmitrymomot/loom/pkg/health"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.Liveness()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	t.Run("all probes up", func(t *testing.T) {
		t.Parallel()

		probes := health.Probes{
			"db":    func(ctx context.Context) error { return nil },
			"redis": func(ctx context.Context) error { return nil },
		}

		rec := httptest.NewRecorder()
		health.Readiness(probes)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("one probe down", func(t *testing.T) {
		t.Parallel()

		probes := health.Probes{
			"db":    func(ctx context.Context) error { return nil },
			"redis": func(ctx context.Context) error { return errors.New("connection refused") },
		}

		req := httptest.NewRequest(http.MethodGet, "/readyz?format=json", nil)
		rec := httptest.NewRecorder()
		health.Readiness(probes)(rec, req)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var report health.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		require.Equal(t, health.StatusDown, report.Status)
		require.Equal(t, health.StatusUp, report.Results["db"].Status)
		require.Equal(t, health.StatusDown, report.Results["redis"].Status)
		require.Contains(t, report.Results["redis"].Error, "connection refused")
	})

	t.Run("no probes", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.Readiness(nil)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("timeout cancels probes", func(t *testing.T) {
		t.Parallel()

		probes := health.Probes{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}

		rec := httptest.NewRecorder()
		start := time.Now()
		health.Readiness(probes, health.WithTimeout(50*time.Millisecond))(
			rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Less(t, time.Since(start), time.Second)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("accept header selects JSON", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		req.Header.Set("Accept", "application/json")

		rec := httptest.NewRecorder()
		health.Readiness(nil)(rec, req)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})
}
