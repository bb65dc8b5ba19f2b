package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "microdog"

// Resolve outcomes.
const (
	ResultHit       = "hit"
	ResultMiss      = "miss"
	ResultMalformed = "malformed"
)

// Registry holds all emulator metrics.
type Registry struct {
	registry *prometheus.Registry

	// Resolver metrics
	ResolveCalls    *prometheus.CounterVec
	ResolveDuration prometheus.Histogram

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     *prometheus.CounterVec

	// Connection metrics
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter
}

// NewRegistry creates a registry with the emulator metrics and the Go
// runtime and process collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		ResolveCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "calls_total",
			Help:      "Challenge resolutions by result",
		}, []string{"result"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "duration_seconds",
			Help:      "Time spent resolving a challenge",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests served by protocol, method and status",
		}, []string{"protocol", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency by protocol and method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"protocol", "method"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"protocol"}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "local",
			Name:      "connections_active",
			Help:      "Open local socket connections",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "local",
			Name:      "connections_total",
			Help:      "Accepted local socket connections",
		}),
	}

	r.registry.MustRegister(
		r.ResolveCalls,
		r.ResolveDuration,
		r.RequestsTotal,
		r.RequestDuration,
		r.RateLimited,
		r.ConnectionsActive,
		r.ConnectionsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns the /metrics handler of the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler exposing this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}

// Gatherer exposes the underlying registry for tests and exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Register adds a collector to the registry.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// RecordResolve counts one resolution and its duration.
func (r *Registry) RecordResolve(result string, seconds float64) {
	r.ResolveCalls.WithLabelValues(result).Inc()
	r.ResolveDuration.Observe(seconds)
}

// RecordRequest counts a served request.
func (r *Registry) RecordRequest(protocol, method, status string) {
	r.RequestsTotal.WithLabelValues(protocol, method, status).Inc()
}

// ObserveRequestDuration records request latency.
func (r *Registry) ObserveRequestDuration(protocol, method string, seconds float64) {
	r.RequestDuration.WithLabelValues(protocol, method).Observe(seconds)
}

// IncRateLimited counts a rejected request.
func (r *Registry) IncRateLimited(protocol string) {
	r.RateLimited.WithLabelValues(protocol).Inc()
}

// ConnOpened tracks a new local connection.
func (r *Registry) ConnOpened() {
	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
}

// ConnClosed tracks a closed local connection.
func (r *Registry) ConnClosed() {
	r.ConnectionsActive.Dec()
}
