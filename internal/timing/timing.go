package timing

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for computations.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// Registry holds the service metrics on its own prometheus registry.
type Registry struct {
	ComputationsTotal   *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec
	GraphNodes          *prometheus.HistogramVec
	GraphEdges          *prometheus.HistogramVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}
	factory := promauto.With(reg)

	r.ComputationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamgraph_computations_total",
			Help: "Total number of graph and comparison computations",
		},
		[]string{"kind", "outcome"},
	)
	r.ComputationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teamgraph_computation_duration_seconds",
			Help:    "Graph computation latency in seconds, dataset load included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	r.GraphNodes = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teamgraph_graph_nodes",
			Help:    "Node count of computed graphs",
			Buckets: []float64{1, 5, 10, 20, 50, 100},
		},
		[]string{"kind"},
	)
	r.GraphEdges = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teamgraph_graph_edges",
			Help:    "Edge count of computed graphs",
			Buckets: []float64{1, 10, 50, 100, 500, 1000},
		},
		[]string{"kind"},
	)

	r.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamgraph_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	r.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teamgraph_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	return r
}

// RecordComputation records one computation of the given kind ("graph" or
// "comparison"). Graph sizes are only observed on success.
func (r *Registry) RecordComputation(kind, outcome string, duration time.Duration, nodes, edges int) {
	r.ComputationsTotal.WithLabelValues(kind, outcome).Inc()
	r.ComputationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if outcome == OutcomeSuccess {
		r.GraphNodes.WithLabelValues(kind).Observe(float64(nodes))
		r.GraphEdges.WithLabelValues(kind).Observe(float64(edges))
	}
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// GetPrometheusRegistry returns the underlying prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
