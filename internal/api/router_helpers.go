package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/middleware"
	"github.com/naijapath/routeviz/internal/ws"
)

// wsHandler upgrades a scene viewer. Allowed origins follow CORS_ORIGINS.
// The connection lives until the client leaves or appCtx is cancelled.
func wsHandler(appCtx context.Context, log *logrus.Logger, hub *ws.Hub, origins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       origins,
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			log.WithError(err).WithField("request_id", c.GetString(middleware.RequestIDKey)).
				Warn("websocket upgrade rejected")

			return
		}

		ctx, cancel := context.WithCancel(appCtx)
		defer cancel()
		stop := context.AfterFunc(c.Request.Context(), cancel)
		defer stop()

		client := ws.NewClient(hub, conn)
		hub.Register(client)

		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}

// ginLogger writes one access log line per request. Server errors log at
// error level, client errors at warn, the rest at info.
func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      c.FullPath(),
			"status":     status,
			"duration":   time.Since(start).String(),
			"client":     c.ClientIP(),
			"request_id": c.GetString(middleware.RequestIDKey),
		})
		if cid := c.GetString("client_request_id"); cid != "" {
			entry = entry.WithField("client_request_id", cid)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// maxListLimit caps the number of items returned by list endpoints.
const maxListLimit = 500

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	if v > maxListLimit {
		return maxListLimit
	}

	return v
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// validatePathID checks that a path parameter ID is non-empty and within length limits.
func validatePathID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if len(id) > maxStateIDLength {
		return fmt.Errorf("id exceeds maximum length of %d", maxStateIDLength)
	}
	return nil
}
