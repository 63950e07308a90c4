package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation of the gateway and its backend calls.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	connections      *prometheus.GaugeVec
	sessionOps       *prometheus.CounterVec
	cacheOps         *prometheus.CounterVec

	requestCount          uint64
	requestDurationTotal  uint64
	upstreamCount         uint64
	upstreamErrors        uint64
	upstreamDurationTotal uint64
	activeConnections     int64
}

// NewMetricsService registers the gateway collectors on a private registry.
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

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of calls to the REST backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method", "status"})

	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Total calls to the REST backend",
	}, []string{"resource", "method", "status"})

	connections := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "websocket_connections",
		Help: "Open websocket connections per channel",
	}, []string{"channel"})

	sessionOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_operations_total",
		Help: "Session store operations by outcome",
	}, []string{"operation", "outcome"})

	cacheOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_operations_total",
		Help: "Catalog cache operations by outcome",
	}, []string{"operation", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamTotal, connections, sessionOps, cacheOps, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamTotal:    upstreamTotal,
		connections:      connections,
		sessionOps:       sessionOps,
		cacheOps:         cacheOps,
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

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveUpstream records one backend call. Status 0 means no response was received.
func (m *MetricsService) ObserveUpstream(resource, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	if status == 0 {
		labelStatus = "network_error"
	}
	m.upstreamDuration.WithLabelValues(resource, method, labelStatus).Observe(duration.Seconds())
	m.upstreamTotal.WithLabelValues(resource, method, labelStatus).Inc()
	atomic.AddUint64(&m.upstreamCount, 1)
	atomic.AddUint64(&m.upstreamDurationTotal, uint64(duration.Nanoseconds()))
	if status == 0 || status >= http.StatusInternalServerError {
		atomic.AddUint64(&m.upstreamErrors, 1)
	}
}

// ConnectionOpened tracks a websocket connection on a channel.
func (m *MetricsService) ConnectionOpened(channel string) {
	if m == nil {
		return
	}
	m.connections.WithLabelValues(channel).Inc()
	atomic.AddInt64(&m.activeConnections, 1)
}

// ConnectionClosed releases a tracked websocket connection.
func (m *MetricsService) ConnectionClosed(channel string) {
	if m == nil {
		return
	}
	m.connections.WithLabelValues(channel).Dec()
	atomic.AddInt64(&m.activeConnections, -1)
}

// RecordSessionOperation counts a session store operation.
func (m *MetricsService) RecordSessionOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.sessionOps.WithLabelValues(operation, outcome).Inc()
}

// RecordCacheOperation counts a cache read as hit or miss, or a write as success or failure.
func (m *MetricsService) RecordCacheOperation(operation string, hit bool) {
	if m == nil {
		return
	}
	outcome := "hit"
	switch {
	case operation != "get" && hit:
		outcome = "success"
	case operation != "get":
		outcome = "failure"
	case !hit:
		outcome = "miss"
	}
	m.cacheOps.WithLabelValues(operation, outcome).Inc()
}

// Snapshot returns aggregated gateway metrics.
func (m *MetricsService) Snapshot() models.GatewayMetrics {
	if m == nil {
		return models.GatewayMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	upstream := atomic.LoadUint64(&m.upstreamCount)
	upDuration := atomic.LoadUint64(&m.upstreamDurationTotal)

	var avgRequestMs, avgUpstreamMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	if upstream > 0 {
		avgUpstreamMs = float64(upDuration) / float64(upstream) / float64(time.Millisecond)
	}

	return models.GatewayMetrics{
		RequestsTotal:             requests,
		AverageRequestDurationMs:  avgRequestMs,
		UpstreamCallsTotal:        upstream,
		UpstreamErrorsTotal:       atomic.LoadUint64(&m.upstreamErrors),
		AverageUpstreamDurationMs: avgUpstreamMs,
		ActiveConnections:         atomic.LoadInt64(&m.activeConnections),
		Goroutines:                runtime.NumGoroutine(),
		GeneratedAt:               time.Now().UTC(),
	}
}
