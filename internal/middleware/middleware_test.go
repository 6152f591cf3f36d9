package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/internal/infrastructure"
	"github.com/kSibalic/nba/internal/shared/testutil"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func newErrorHandler(t *testing.T) *apperrors.ErrorHandler {
	logger, _ := testutil.NewTestLogger(t)
	return apperrors.NewErrorHandler(logger, false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenReqID, seenTraceID string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenReqID = GetReqID(r.Context())
				seenTraceID = infrastructure.GetTraceID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.NotEmpty(t, seenReqID)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, seenReqID)
			} else {
				assert.Len(t, seenReqID, 36)
			}
			assert.Equal(t, seenReqID, seenTraceID)
			assert.Equal(t, seenReqID, rec.Header().Get(RequestIDHeader))
		})
	}
}

func TestStructuredLogger(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := RequestID(StructuredLogger(logger)(http.HandlerFunc(okHandler)))

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/regular/table?n=5", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, logs.ContainsMessage("request completed"))
	assert.True(t, logs.ContainsAttr("request_id", "req-1"))
	assert.True(t, logs.ContainsAttr("status", int64(http.StatusOK)))
	assert.True(t, logs.ContainsAttr("query", "n=5"))
}

func TestRecoverer(t *testing.T) {
	h := RequestID(Recoverer(newErrorHandler(t))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, apperrors.TypeInternal, body["type"])
	assert.NotEmpty(t, body["trace_id"])
}

func TestRateLimiter(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	rl := NewRateLimiter(0.001, 2, logger, newErrorHandler(t))
	h := rl.Handler(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.True(t, logs.ContainsMessage("rate limit exceeded"))
}

func TestTimeout(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	eh := newErrorHandler(t)

	t.Run("slow handler gets 504", func(t *testing.T) {
		h := Timeout(10*time.Millisecond, logger, eh)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})

	t.Run("fast handler untouched", func(t *testing.T) {
		h := Timeout(time.Second, logger, eh)(http.HandlerFunc(okHandler))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantCode   int
	}{
		{name: "any origin", origin: "http://charts.local", method: http.MethodGet, wantOrigin: "http://charts.local", wantCode: http.StatusOK},
		{name: "listed origin", allowed: []string{"http://charts.local"}, origin: "http://charts.local", method: http.MethodGet, wantOrigin: "http://charts.local", wantCode: http.StatusOK},
		{name: "unlisted origin", allowed: []string{"http://charts.local"}, origin: "http://evil.local", method: http.MethodGet, wantCode: http.StatusOK},
		{name: "preflight", origin: "http://charts.local", method: http.MethodOptions, wantOrigin: "http://charts.local", wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CORS(CORSConfig{AllowedOrigins: tt.allowed})(http.HandlerFunc(okHandler))
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), RequestIDHeader)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestGetRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, remote: "1.1.1.1:80", want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.9"}, remote: "1.1.1.1:80", want: "10.0.0.9"},
		{name: "remote addr", remote: "1.1.1.1:80", want: "1.1.1.1"},
		{name: "remote without port", remote: "1.1.1.1", want: "1.1.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetRealIP(req))
		})
	}
}

func TestOTelMiddlewareRecordsRoute(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	logger, _ := testutil.NewTestLogger(t)

	om, err := NewOTelMiddleware(&infrastructure.OTelProviders{
		Tracer: tp.Tracer("test"),
		Meter:  mp.Meter("test"),
		Logger: logger,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(om.Handler)
	r.Get("/api/datasets/{kind}/summary", okHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/datasets/regular/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/datasets/{kind}/summary", spans[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http_requests_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				route, _ := dp.Attributes.Value("route")
				assert.Equal(t, "/api/datasets/{kind}/summary", route.AsString())
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(1), total)
}
