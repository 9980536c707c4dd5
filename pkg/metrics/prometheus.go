// Package metrics provides Prometheus metrics for the alpe chart service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Latency buckets in milliseconds; fetches are remote, renders are local.
var defaultLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Fetch outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Manager owns every metric of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset
	fetchTotal       *prometheus.CounterVec
	fetchLatency     prometheus.Histogram
	recordsLoaded    prometheus.Gauge
	recordsDoped     prometheus.Gauge
	recordsClean     prometheus.Gauge
	recordsMalformed prometheus.Counter

	// Rendering
	rendersTotal  *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec
	renderErrors  *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "alpe",
		subsystem:        "viz",
		histogramBuckets: defaultLatencyBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: m.histogramBuckets}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchTotal = auto.NewCounterVec(m.counterOpts("fetch_total", "Dataset fetches by outcome"), []string{"outcome"})
	m.fetchLatency = auto.NewHistogram(m.histogramOpts("fetch_latency_milliseconds", "Dataset fetch latency in milliseconds"))
	m.recordsLoaded = auto.NewGauge(m.gaugeOpts("records_loaded", "Number of records in the loaded dataset"))
	m.recordsDoped = auto.NewGauge(m.gaugeOpts("records_doped", "Records carrying a doping allegation"))
	m.recordsClean = auto.NewGauge(m.gaugeOpts("records_clean", "Records without a doping allegation"))
	m.recordsMalformed = auto.NewCounter(m.counterOpts("records_malformed_total", "Records whose race time did not parse"))

	m.rendersTotal = auto.NewCounterVec(m.counterOpts("renders_total", "Chart renders by output format"), []string{"format"})
	m.renderLatency = auto.NewHistogramVec(m.histogramOpts("render_latency_milliseconds", "Chart render latency in milliseconds"), []string{"format"})
	m.renderErrors = auto.NewCounterVec(m.counterOpts("render_errors_total", "Chart render failures by output format"), []string{"format"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "HTTP errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total", "Errors by type and severity"), []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Allocated heap bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds", "Average GC pause in milliseconds"))
}

// Dataset metrics.

// RecordFetch counts a fetch and observes its latency.
func RecordFetch(outcome string, latencyMs float64) {
	globalManager.fetchTotal.WithLabelValues(outcome).Inc()
	globalManager.fetchLatency.Observe(latencyMs)
}

// UpdateDataset publishes the size and doping split of the loaded dataset.
func UpdateDataset(total, doped, clean int) {
	globalManager.recordsLoaded.Set(float64(total))
	globalManager.recordsDoped.Set(float64(doped))
	globalManager.recordsClean.Set(float64(clean))
}

// RecordMalformed counts records with an unparsable race time.
func RecordMalformed(n int) {
	if n > 0 {
		globalManager.recordsMalformed.Add(float64(n))
	}
}

// Render metrics.

// RecordRender counts a successful render and its latency.
func RecordRender(format string, latencyMs float64) {
	globalManager.rendersTotal.WithLabelValues(format).Inc()
	globalManager.renderLatency.WithLabelValues(format).Observe(latencyMs)
}

// RecordRenderError counts a failed render.
func RecordRenderError(format string) {
	globalManager.renderErrors.WithLabelValues(format).Inc()
}

// HTTP metrics.

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an HTTP error for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// System metrics.

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry holding the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
