package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for outbound requests.
type Metrics struct {
	BackendRequests *prometheus.CounterVec   // labels: endpoint={predict,forensic}, outcome={success,error,rejected}
	BackendDuration *prometheus.HistogramVec // labels: endpoint
	GeocodeRequests *prometheus.CounterVec   // labels: outcome={success,error,empty}
	GPSRequests     *prometheus.CounterVec   // labels: provider, outcome={success,error,unsupported}
}

func newMetrics() *Metrics {
	return &Metrics{
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_terminal",
			Name:      "backend_requests_total",
			Help:      "Analysis backend requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flood_terminal",
			Name:      "backend_request_duration_seconds",
			Help:      "Analysis backend request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_terminal",
			Name:      "geocode_requests_total",
			Help:      "Nominatim lookups by outcome.",
		}, []string{"outcome"}),
		GPSRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_terminal",
			Name:      "gps_requests_total",
			Help:      "Device location requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.BackendRequests,
		m.BackendDuration,
		m.GeocodeRequests,
		m.GPSRequests,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics that are not registered anywhere.
// Offline tools and tests use it so several instances can coexist.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}
