package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kSibalic/nba/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTelemetry() config.TelemetryConfig {
	return config.TelemetryConfig{
		ServiceName:    "hoops-stats-test",
		Environment:    "test",
		EnableTracing:  false,
		EnableMetrics:  true,
		TraceExporter:  "none",
		MetricExporter: "prometheus",
		SampleRatio:    1.0,
	}
}

func TestOTelConfiguration(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.TelemetryConfig)
		wantMetrics bool
		wantTracing bool
		wantErr     bool
	}{
		{name: "metrics only", mutate: func(*config.TelemetryConfig) {}, wantMetrics: true},
		{
			name: "stdout tracing",
			mutate: func(c *config.TelemetryConfig) {
				c.EnableTracing = true
				c.TraceExporter = "stdout"
			},
			wantMetrics: true,
			wantTracing: true,
		},
		{
			name: "everything disabled",
			mutate: func(c *config.TelemetryConfig) {
				c.EnableMetrics = false
			},
		},
		{
			name: "unknown metric exporter",
			mutate: func(c *config.TelemetryConfig) {
				c.MetricExporter = "statsd"
			},
			wantErr: true,
		},
		{
			name: "unknown trace exporter",
			mutate: func(c *config.TelemetryConfig) {
				c.EnableTracing = true
				c.TraceExporter = "jaeger"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testTelemetry()
			tt.mutate(&cfg)

			providers, err := InitializeOTel(cfg, "test", discardLogger())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.NotNil(t, providers.Tracer)
			assert.NotNil(t, providers.Meter)
			assert.Equal(t, tt.wantMetrics, providers.MeterProvider != nil)
			assert.Equal(t, tt.wantMetrics, providers.PrometheusHTTP != nil)
			assert.Equal(t, tt.wantTracing, providers.TracerProvider != nil)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			assert.NoError(t, providers.Shutdown(ctx))
		})
	}
}

func TestDisabledProvidersAreUsable(t *testing.T) {
	cfg := testTelemetry()
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, "test", discardLogger())
	require.NoError(t, err)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx, span := providers.Tracer.Start(context.Background(), "noop")
	metrics.RecordLoad(ctx, "regular", 3, 1, time.Millisecond)
	span.End()

	assert.Empty(t, TraceIDFromContext(ctx))
}

func TestPrometheusEndpointExposesPipelineMetrics(t *testing.T) {
	providers, err := InitializeOTel(testTelemetry(), "test", discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordLoad(ctx, "regular", 12, 4, 20*time.Millisecond)
	metrics.RecordMismatch(ctx, "regular")
	metrics.RecordSourceFailure(ctx, "playoff")

	server := httptest.NewServer(providers.PrometheusHTTP)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	for _, name := range []string{
		"hoops_rows_parsed_total",
		"hoops_row_width_mismatch_total",
		"hoops_fields_defaulted_total",
		"hoops_source_failures_total",
		"hoops_load_duration_seconds",
		"go_goroutines",
	} {
		assert.Contains(t, string(body), name)
	}
}

func TestPipelineMetricsRecordValues(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := CreatePipelineMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordLoad(ctx, "regular", 10, 2, time.Second)
	metrics.RecordLoad(ctx, "playoff", 5, 0, time.Second)
	metrics.RecordMismatch(ctx, "regular")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(15), sums["hoops_rows_parsed_total"])
	assert.Equal(t, int64(2), sums["hoops_fields_defaulted_total"])
	assert.Equal(t, int64(1), sums["hoops_row_width_mismatch_total"])
}

func TestNilPipelineMetricsIsSafe(t *testing.T) {
	var metrics *PipelineMetrics
	assert.NotPanics(t, func() {
		metrics.RecordLoad(context.Background(), "regular", 1, 1, time.Second)
		metrics.RecordMismatch(context.Background(), "regular")
		metrics.RecordSourceFailure(context.Background(), "regular")
	})
}

func TestRecordErrorMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "load")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	RecordError(ctx, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "boom", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestCreateHTTPMetrics(t *testing.T) {
	providers, err := InitializeOTel(testTelemetry(), "test", discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateHTTPMetrics(providers.Meter)
	require.NoError(t, err)
	assert.NotNil(t, metrics.RequestsTotal)
	assert.NotNil(t, metrics.RequestDuration)
	assert.NotNil(t, metrics.ActiveRequests)
}
