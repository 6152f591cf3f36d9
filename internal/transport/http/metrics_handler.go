package http

import (
	"net/http"

	apierrors "github.com/kSibalic/nba/internal/errors"
)

// MetricsHandler serves the Prometheus scrape endpoint
type MetricsHandler struct {
	exporter     http.Handler
	errorHandler *apierrors.ErrorHandler
}

// NewMetricsHandler wraps exporter. A nil exporter means metrics are
// disabled and the endpoint answers 503.
func NewMetricsHandler(exporter http.Handler, errorHandler *apierrors.ErrorHandler) *MetricsHandler {
	return &MetricsHandler{exporter: exporter, errorHandler: errorHandler}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusServiceUnavailable,
			"SERVICE_UNAVAILABLE",
			"Metrics are disabled",
		))
		return
	}
	h.exporter.ServeHTTP(w, r)
}
