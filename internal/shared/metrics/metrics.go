package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "goal_detector"

// Metrics holds the collectors reported by the roadmap pipeline. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	roadmapsGenerated *prometheus.CounterVec
	lowSignal         prometheus.Counter
	gatewayFallbacks  *prometheus.CounterVec
	generation        *prometheus.HistogramVec
	exportFailures    prometheus.Counter
	httpRequests      *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		roadmapsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roadmaps_generated_total",
			Help:      "Roadmaps generated, by source (local or personalized).",
		}, []string{"source"}),
		lowSignal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "low_signal_total",
			Help:      "Submissions where no theme was detected and the starter set was used.",
		}),
		gatewayFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_fallbacks_total",
			Help:      "Personalization attempts that fell back to the local pipeline, by reason.",
		}, []string{"reason"}),
		generation: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "roadmap_generation_seconds",
			Help:      "Time spent generating a roadmap, by source.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		exportFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_failures_total",
			Help:      "Export documents that could not be archived.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// RoadmapGenerated records one generated roadmap and how long it took.
func (m *Metrics) RoadmapGenerated(source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.roadmapsGenerated.WithLabelValues(source).Inc()
	m.generation.WithLabelValues(source).Observe(elapsed.Seconds())
}

// LowSignal records a submission without detected themes.
func (m *Metrics) LowSignal() {
	if m == nil {
		return
	}
	m.lowSignal.Inc()
}

// GatewayFallback records a personalization attempt that was discarded.
func (m *Metrics) GatewayFallback(reason string) {
	if m == nil {
		return
	}
	m.gatewayFallbacks.WithLabelValues(reason).Inc()
}

// ExportFailed records an export document that was not archived.
func (m *Metrics) ExportFailed() {
	if m == nil {
		return
	}
	m.exportFailures.Inc()
}

// HTTPRequest records a served request.
func (m *Metrics) HTTPRequest(route string, code int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler exposes the registry in Prometheus text format.
func Handler(g prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
