// Package metrics provides Prometheus metrics for the ekiden content service
// and ranking generator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by the module.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Content Metrics - collection loading
	contentLoads        *prometheus.CounterVec
	contentLoadFailures *prometheus.CounterVec
	contentItems        *prometheus.GaugeVec
	contentLoadLatency  *prometheus.HistogramVec

	// Ranking Metrics - generator output
	rankingFilesWritten *prometheus.CounterVec
	rankingRecords      *prometheus.GaugeVec
	rankingAnomalies    prometheus.Counter
	rankingEventsEmpty  *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ekiden",
		subsystem:        "site",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.contentLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "content_loads_total",
		Help:      "Total number of collection file loads",
	}, []string{"collection"})

	m.contentLoadFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "content_load_failures_total",
		Help:      "Collection loads that degraded to an empty collection",
	}, []string{"collection", "reason"})

	m.contentItems = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "content_items",
		Help:      "Number of items in the most recently loaded collection",
	}, []string{"collection"})

	m.contentLoadLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "content_load_latency_milliseconds",
		Help:      "Time to read, decode and sort a collection",
		Buckets:   m.histogramBuckets,
	}, []string{"collection"})

	m.rankingFilesWritten = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_files_written_total",
		Help:      "Ranking files written by the generator",
	}, []string{"event"})

	m.rankingRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_records",
		Help:      "Records in the last ranking generated per event",
	}, []string{"event"})

	m.rankingAnomalies = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_anomalies_total",
		Help:      "Personal bests whose time could not be parsed",
	})

	m.rankingEventsEmpty = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_events_skipped_total",
		Help:      "Tracked events skipped because no member had a record",
	}, []string{"event"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordContentLoad counts a collection load and records its latency.
func RecordContentLoad(collection string, latencyMs float64) {
	globalManager.contentLoads.WithLabelValues(collection).Inc()
	globalManager.contentLoadLatency.WithLabelValues(collection).Observe(latencyMs)
}

// RecordContentLoadFailure counts a load that degraded to an empty collection.
func RecordContentLoadFailure(collection, reason string) {
	globalManager.contentLoadFailures.WithLabelValues(collection, reason).Inc()
}

// UpdateContentItems sets the size of a collection.
func UpdateContentItems(collection string, count int) {
	globalManager.contentItems.WithLabelValues(collection).Set(float64(count))
}

// RecordRankingWritten counts a written ranking file and its record count.
func RecordRankingWritten(event string, records int) {
	globalManager.rankingFilesWritten.WithLabelValues(event).Inc()
	globalManager.rankingRecords.WithLabelValues(event).Set(float64(records))
}

// RecordRankingSkipped counts a tracked event with no records.
func RecordRankingSkipped(event string) {
	globalManager.rankingEventsEmpty.WithLabelValues(event).Inc()
}

// RecordRankingAnomalies adds n unparseable personal-best times.
func RecordRankingAnomalies(n int) {
	if n > 0 {
		globalManager.rankingAnomalies.Add(float64(n))
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
