// Package api provides HTTP handlers for routeviz.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const readinessTimeout = 3 * time.Second

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	routes    ReadinessChecker
	events    EventCursor
	log       *logrus.Logger
	version   string
	endpoint  string
	startTime time.Time
	probes    singleflight.Group
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
// routes and events may be nil.
func NewHealthHandler(routes ReadinessChecker, events EventCursor, log *logrus.Logger, version, endpoint string) *HealthHandler {
	return &HealthHandler{
		routes:    routes,
		events:    events,
		log:       log,
		version:   version,
		endpoint:  endpoint,
		startTime: time.Now(),
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	RouteService  string  `json:"route_service"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		RouteService:  h.endpoint,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.events != nil {
		resp.WSClients = h.events.ClientCount()
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready. It checks that the route service
// answers; concurrent probes share one upstream ping.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{
		"route_service": "ok",
	}
	status := "ready"
	statusCode := http.StatusOK

	if h.routes == nil {
		checks["route_service"] = "not_configured"
	} else if err := h.pingRoutes(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("readiness: route service unreachable")
		checks["route_service"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}

func (h *HealthHandler) pingRoutes(ctx context.Context) error {
	_, err, _ := h.probes.Do("route_service", func() (any, error) {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), readinessTimeout)
		defer cancel()

		return nil, h.routes.Ping(pctx)
	})

	return err
}
