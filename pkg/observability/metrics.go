package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all Prometheus metrics for the client core.
// Each Collector owns a private registry so tests can create isolated
// instances without duplicate-registration panics.
type Collector struct {
	registry *prometheus.Registry

	// Gateway metrics
	GatewayRequests *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec

	// Store metrics
	StoreMutations *prometheus.CounterVec

	// Optimistic mutation metrics
	OptimisticRollbacks *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	gatewayRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Total number of remote gateway requests",
		},
		[]string{"operation", "status"},
	)

	gatewayDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Remote gateway request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	storeMutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Total number of domain store mutations",
		},
		[]string{"store", "op"},
	)

	optimisticRollbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimistic_rollbacks_total",
			Help:      "Total number of compensated optimistic mutations",
		},
		[]string{"kind"},
	)

	registry.MustRegister(gatewayRequests, gatewayDuration, storeMutations, optimisticRollbacks)

	return &Collector{
		registry:            registry,
		GatewayRequests:     gatewayRequests,
		GatewayDuration:     gatewayDuration,
		StoreMutations:      storeMutations,
		OptimisticRollbacks: optimisticRollbacks,
	}
}

// Registry exposes the private registry for scraping or test inspection
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveGatewayRequest records one gateway round-trip
func (c *Collector) ObserveGatewayRequest(operation, status string, duration time.Duration) {
	if c == nil {
		return // Metrics are optional for callers
	}
	c.GatewayRequests.WithLabelValues(operation, status).Inc()
	c.GatewayDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordStoreMutation records one store mutation
func (c *Collector) RecordStoreMutation(store, op string) {
	if c == nil {
		return
	}
	c.StoreMutations.WithLabelValues(store, op).Inc()
}

// RecordOptimisticRollback records one compensated optimistic mutation
func (c *Collector) RecordOptimisticRollback(kind string) {
	if c == nil {
		return
	}
	c.OptimisticRollbacks.WithLabelValues(kind).Inc()
}
