package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "meteo_dashboard"

// Metrics holds the Prometheus collectors for the dashboard.
type Metrics struct {
	ConsultationsCreated prometheus.Counter
	ValidationFailures   prometheus.Counter

	UpstreamErrors   prometheus.Counter
	UpstreamDuration prometheus.Histogram

	CacheLookups  *prometheus.CounterVec // labels: result={hit,miss}
	Notifications *prometheus.CounterVec // labels: outcome={sent,failed,dropped}
	PDFRenders    *prometheus.CounterVec // labels: outcome={ok,error,unavailable}
}

func newMetrics() *Metrics {
	return &Metrics{
		ConsultationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consultations_created_total",
			Help:      "Consultations stored since process start.",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consultation_validation_failures_total",
			Help:      "Consultation requests rejected by validation.",
		}),
		UpstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_errors_total",
			Help:      "Failed forecast provider requests.",
		}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Forecast provider request duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_cache_lookups_total",
			Help:      "Forecast cache lookups by result.",
		}, []string{"result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Report notification emails by outcome.",
		}, []string{"outcome"}),
		PDFRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_renders_total",
			Help:      "PDF export requests by outcome.",
		}, []string{"outcome"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ConsultationsCreated,
		m.ValidationFailures,
		m.UpstreamErrors,
		m.UpstreamDuration,
		m.CacheLookups,
		m.Notifications,
		m.PDFRenders,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build
// as many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
