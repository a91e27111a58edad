package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/middleware"
	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log            *logrus.Logger
	Hub            *ws.Hub
	Graph          *models.Graph
	Routes         RouteService
	Scene          SceneService
	History        HistoryReader
	Readiness      ReadinessChecker
	CORSOrigins    []string
	Version        string
	RouteEndpoint  string
	DefaultSpeedMS int64
}

// Router-level limits.
const (
	maxBodySize    = 64 << 10 // 64 KB
	rateLimit      = 100      // requests per second per IP
	rateBurst      = 200      // token bucket burst size
	routeRateLimit = 5        // route calculations per second per IP
	routeRateBurst = 10
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders("/api/v1/scene.svg"))
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, "api", rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware("/api/v1/ws"))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	var events EventCursor
	if deps.Hub != nil {
		events = deps.Hub
	}

	health := NewHealthHandler(deps.Readiness, events, log, deps.Version, deps.RouteEndpoint)
	graph := NewGraphHandler(deps.Graph, deps.DefaultSpeedMS, log)
	route := NewRouteHandler(deps.Routes, deps.History, log)
	scene := NewSceneHandler(deps.Scene, events, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Topology and controls.
	api.GET("/graph", graph.Get)
	api.GET("/controls", graph.Controls)

	// Route requests.
	routeLimiter := middleware.NewRateLimiter(ctx, "route", routeRateLimit, routeRateBurst).
		WithMessage("too many route requests")
	api.POST("/route", routeLimiter.Handler(), route.Find)
	api.POST("/reset", route.Reset)
	api.GET("/status", route.Status)
	api.GET("/history", route.History)

	// Scene.
	api.GET("/scene", scene.Get)
	api.GET("/scene.svg", scene.SVG)
	api.POST("/scene/nodes/:id/hover", scene.HoverEnter)
	api.DELETE("/scene/nodes/:id/hover", scene.HoverLeave)

	// WebSocket endpoint.
	if deps.Hub != nil {
		api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins))
	}
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
