package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naijapath/routeviz/internal/metrics"
)

// PrometheusMiddleware records HTTP request duration and count.
// The WebSocket route is skipped: its duration is the connection lifetime.
func PrometheusMiddleware(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath() // route pattern, not actual path (avoids cardinality explosion)
		if path == "" {
			path = "unknown"
		}
		if skip[path] {
			return
		}

		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
