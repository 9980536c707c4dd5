// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/alpe/pkg/metrics"
)

// DatasetStateHeader reports the dataset load state on /healthz.
const DatasetStateHeader = "X-Dataset-State"

// HealthHandler serves the metrics exposition and the load state.
type HealthHandler struct {
	deps    Dependencies
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests. The body is the Prometheus
// exposition of the service registry; the process is healthy while it
// answers, whatever the dataset state.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, "health") {
		return
	}
	if h.deps != nil {
		w.Header().Set(DatasetStateHeader, string(h.deps.Status()))
	}
	h.metrics.ServeHTTP(w, r)
}
