package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	coreRequests *prometheus.CounterVec
	coreDuration *prometheus.HistogramVec
}

// NewMetrics registers the gateway collectors plus the Go and process
// collectors on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		coreRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsmcp_core_requests_total",
				Help: "Core requests by tool, method, outcome and status",
			},
			[]string{"tool", "method", "outcome", "status"},
		),
		coreDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "opsmcp_core_request_duration_seconds",
				Help:    "Duration of Core round trips",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
			},
			[]string{"tool", "method"},
		),
	}
	m.registry.MustRegister(
		m.coreRequests,
		m.coreDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) recordCall(tool, method, outcome string, status int, seconds float64) {
	if tool == "" {
		tool = "none"
	}
	code := ""
	if status != 0 {
		code = strconv.Itoa(status)
	}
	m.coreRequests.WithLabelValues(tool, method, outcome, code).Inc()
	m.coreDuration.WithLabelValues(tool, method).Observe(seconds)
}
