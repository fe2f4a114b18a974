package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface, the Canvas fan-out, and completion calls.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	canvasDuration  *prometheus.HistogramVec
	coursesSkipped  prometheus.Counter
	completionCalls *prometheus.CounterVec
	completionTime  prometheus.Observer
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	canvasDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "canvas_request_duration_seconds",
		Help:    "Duration of upstream Canvas API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "outcome"})

	coursesSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "canvas_courses_skipped_total",
		Help: "Courses dropped from fan-out results because their fetch failed",
	})

	completionCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "completion_requests_total",
		Help: "Total completion service calls",
	}, []string{"outcome"})

	completionTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "completion_request_duration_seconds",
		Help:    "Duration of completion service calls",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, canvasDuration, coursesSkipped, completionCalls, completionTime, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		canvasDuration:  canvasDuration,
		coursesSkipped:  coursesSkipped,
		completionCalls: completionCalls,
		completionTime:  completionTime,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveCanvasRequest records one upstream Canvas call.
func (m *MetricsService) ObserveCanvasRequest(resource string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.canvasDuration.WithLabelValues(resource, outcome).Observe(duration.Seconds())
}

// RecordCourseSkipped counts a course dropped from fan-out results.
func (m *MetricsService) RecordCourseSkipped() {
	if m == nil {
		return
	}
	m.coursesSkipped.Inc()
}

// ObserveCompletion records one completion service round trip.
func (m *MetricsService) ObserveCompletion(err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.completionCalls.WithLabelValues(outcome).Inc()
	m.completionTime.Observe(duration.Seconds())
}
