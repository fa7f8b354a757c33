package core

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetricsRecorder publishes operation metrics to a private
// prometheus registry, keeping the process default registry untouched so
// several recorders can coexist in one binary.
type PrometheusMetricsRecorder struct {
	registry  *prometheus.Registry
	durations *prometheus.HistogramVec
	results   *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder constructs a recorder with its own registry.
func NewPrometheusMetricsRecorder() *PrometheusMetricsRecorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &PrometheusMetricsRecorder{
		registry: registry,
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "etymon_operation_duration_seconds",
			Help:    "Duration of service operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		results: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "etymon_operation_results_total",
			Help: "Service operation outcomes by status",
		}, []string{"operation", "status"}),
	}
}

// Observe records a service operation outcome.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
	r.results.WithLabelValues(operation, status).Inc()
}

// Registry exposes the backing registry for scraping and tests.
func (r *PrometheusMetricsRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns an exposition handler serving the recorder's registry.
func (r *PrometheusMetricsRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
