package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kSibalic/nba/internal/config"
	apierrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/internal/services"
	"github.com/kSibalic/nba/internal/shared/testutil"
	"github.com/kSibalic/nba/internal/source"
)

func loadedSnapshot(t *testing.T) *source.Snapshot {
	t.Helper()
	bodies := map[string]string{
		"regular.csv": testutil.SampleRegular(),
		"playoff.csv": testutil.SamplePlayoff(),
	}
	fetcher := source.FetcherFunc(func(_ context.Context, location string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(bodies[location])), nil
	})
	cfg := config.Default().Data
	cfg.RegularSource, cfg.PlayoffSource = "regular.csv", "playoff.csv"

	snapshot, err := source.LoadSeason(context.Background(), fetcher, cfg)
	require.NoError(t, err)
	return snapshot
}

func TestHealthHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	tests := []struct {
		name       string
		snapshot   *source.Snapshot
		path       string
		wantStatus int
		wantField  string
		wantValue  string
	}{
		{name: "health", path: "/healthz", wantStatus: http.StatusOK, wantField: "status", wantValue: "ok"},
		{name: "live", path: "/livez", wantStatus: http.StatusOK, wantField: "status", wantValue: "alive"},
		{name: "version", path: "/version", wantStatus: http.StatusOK, wantField: "version", wantValue: "test"},
		{name: "ready", snapshot: loadedSnapshot(t), path: "/readyz", wantStatus: http.StatusOK, wantField: "status", wantValue: "ready"},
		{name: "not ready", path: "/readyz", wantStatus: http.StatusServiceUnavailable, wantField: "status", wantValue: "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(services.NewHealthService("test", tt.snapshot, logger), logger)

			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantValue, body[tt.wantField])
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	eh := apierrors.NewErrorHandler(logger, false)

	t.Run("delegates to exporter", func(t *testing.T) {
		exporter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("hoops_rows_parsed_total 8\n"))
		})
		rec := httptest.NewRecorder()
		NewMetricsHandler(exporter, eh).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "hoops_rows_parsed_total")
	})

	t.Run("disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMetricsHandler(nil, eh).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
