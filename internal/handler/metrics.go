package handler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/global-express/whatsapp-notifier/internal/domain"
)

// Metrics holds Prometheus metrics
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dispatchTotal       *prometheus.CounterVec
	dispatchDuration    *prometheus.HistogramVec
	providerConfigured  prometheus.Gauge
}

// NewMetrics creates and registers metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		dispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whatsapp_dispatch_total",
				Help: "Total number of provider send attempts by outcome",
			},
			[]string{"kind", "status"},
		),
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "whatsapp_dispatch_duration_seconds",
				Help:    "Duration of the provider send call",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"kind"},
		),
		providerConfigured: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "whatsapp_provider_configured",
				Help: "1 when provider credentials are present",
			},
		),
	}
}

// RecordRequest records HTTP request metrics
func (m *Metrics) RecordRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDispatch records one provider send attempt
func (m *Metrics) RecordDispatch(kind domain.Kind, status domain.DispatchStatus, duration time.Duration) {
	m.dispatchTotal.WithLabelValues(string(kind), string(status)).Inc()
	m.dispatchDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
}

// SetConfigured records whether the provider is configured
func (m *Metrics) SetConfigured(configured bool) {
	if configured {
		m.providerConfigured.Set(1)
		return
	}
	m.providerConfigured.Set(0)
}

// MetricsHandler serves the Prometheus exposition endpoint
type MetricsHandler struct {
	gatherer prometheus.Gatherer
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(gatherer prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{gatherer: gatherer}
}

// Handler returns the Prometheus HTTP handler
func (h *MetricsHandler) Handler() http.Handler {
	return promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
}
