// Package metrics exposes Prometheus instrumentation for the field service API.
// All collectors live on a private registry so tests can create isolated instances.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fieldservice"

type Registry struct {
	reg *prometheus.Registry

	Transitions        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Entities           *prometheus.GaugeVec
	RequestDuration    *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_transitions_total",
		Help:      "Successful lifecycle operations by entity and transition.",
	}, []string{"entity", "transition"})
	validationFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Rejected payloads by entity.",
	}, []string{"entity"})
	entities := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_entities",
		Help:      "Records held in the store by collection.",
	}, []string{"collection"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route pattern and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	r.MustRegister(
		transitions,
		validationFailures,
		entities,
		requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		reg:                r,
		Transitions:        transitions,
		ValidationFailures: validationFailures,
		Entities:           entities,
		RequestDuration:    requestDuration,
	}
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// The recording helpers below are no-ops on a nil Registry.

// RecordTransition counts a successful lifecycle operation
func (r *Registry) RecordTransition(entity, transition string) {
	if r == nil {
		return
	}
	r.Transitions.WithLabelValues(entity, transition).Inc()
}

// RecordValidationFailure counts a rejected payload
func (r *Registry) RecordValidationFailure(entity string) {
	if r == nil {
		return
	}
	r.ValidationFailures.WithLabelValues(entity).Inc()
}

// SetEntityCount sets the gauge for a collection
func (r *Registry) SetEntityCount(collection string, n int) {
	if r == nil {
		return
	}
	r.Entities.WithLabelValues(collection).Set(float64(n))
}

// ObserveRequest records the latency of one HTTP request
func (r *Registry) ObserveRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
