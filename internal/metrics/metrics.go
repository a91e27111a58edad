// Package metrics defines Prometheus metrics for routeviz.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routeviz_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	RouteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_route_requests_total",
			Help: "Route computations by outcome",
		},
		[]string{"outcome"},
	)

	RouteRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "routeviz_route_request_duration_seconds",
			Help:    "Latency of calls to the route service",
			Buckets: prometheus.DefBuckets,
		},
	)

	AnimationStepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_animation_steps_total",
			Help: "Animation steps scheduled by role",
		},
		[]string{"role"},
	)

	StaleEffectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_stale_effects_total",
			Help: "Deferred effects skipped because a newer run superseded them",
		},
		[]string{"kind"},
	)

	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routeviz_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "routeviz_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	SceneElements = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "routeviz_scene_elements",
			Help: "Rendered scene elements by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		RouteRequestsTotal, RouteRequestDuration,
		AnimationStepsTotal, StaleEffectsTotal, RateLimitedTotal,
		WSConnections, SceneElements,
	)
}
