package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripnest/inputguard/pkg/sanitizer"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Detections      *prometheus.CounterVec
	Validations     *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	RateLimitedHits prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Detections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inputguard_detections_total",
			Help: "Attack signatures matched by the detectors",
		}, []string{"detector", "pattern"}),
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inputguard_validations_total",
			Help: "ValidateAndSanitize calls by context and outcome",
		}, []string{"context", "result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inputguard_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inputguard_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		RateLimitedHits: f.NewCounter(prometheus.CounterOpts{
			Name: "inputguard_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}),
	}
}

// DetectionHook feeds inputguard_detections_total.
func (m *Metrics) DetectionHook() sanitizer.DetectionHook {
	return func(detector, pattern string) {
		m.Detections.WithLabelValues(detector, pattern).Inc()
	}
}

func (m *Metrics) observeValidation(ctx sanitizer.Context, res sanitizer.Result) {
	if ctx == "" {
		ctx = sanitizer.ContextText
	}
	result := "valid"
	if !res.Valid {
		result = "invalid"
	}
	m.Validations.WithLabelValues(string(ctx), result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument records request counts and latency labeled by chi route pattern.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
