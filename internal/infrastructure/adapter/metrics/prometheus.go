package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
)

const namespace = "payment_gateway"

// PrometheusMetrics records lifecycle metrics on a private registry
type PrometheusMetrics struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	remoteCalls *prometheus.CounterVec
	remoteTime  *prometheus.HistogramVec
	httpTime    *prometheus.HistogramVec
}

// Ensure PrometheusMetrics implements the core.Metrics interface
var _ core.Metrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates the collectors together with the go and process collectors
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Transaction status changes by gateway and edge.",
		}, []string{"gateway", "from", "to"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Normalized payment failures by gateway, operation and outcome kind.",
		}, []string{"gateway", "operation", "kind"}),
		remoteCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_calls_total",
			Help:      "Bank calls by gateway, operation and result.",
		}, []string{"gateway", "operation", "result"}),
		remoteTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_call_duration_seconds",
			Help:      "Latency of bank calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"gateway", "operation"}),
		httpTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of API requests by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// TransitionRecorded counts a status change for a gateway
func (m *PrometheusMetrics) TransitionRecorded(gateway, from, to string) {
	m.transitions.WithLabelValues(gateway, from, to).Inc()
}

// FailureRecorded counts a normalized failure by outcome kind
func (m *PrometheusMetrics) FailureRecorded(gateway, operation, kind string) {
	m.failures.WithLabelValues(gateway, operation, kind).Inc()
}

// RemoteCallObserved records the latency and result of one bank call
func (m *PrometheusMetrics) RemoteCallObserved(gateway, operation, result string, elapsed time.Duration) {
	m.remoteCalls.WithLabelValues(gateway, operation, result).Inc()
	m.remoteTime.WithLabelValues(gateway, operation).Observe(elapsed.Seconds())
}

// HTTPRequestObserved records the latency of one API request
func (m *PrometheusMetrics) HTTPRequestObserved(method, route, status string, elapsed time.Duration) {
	m.httpTime.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}

// RegisterDBStats exposes the sql.DB pool statistics
func (m *PrometheusMetrics) RegisterDBStats(db *sql.DB, dbName string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// Registry returns the private registry
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the exposition format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
