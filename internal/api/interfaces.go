package api

import (
	"context"
	"io"
	"time"

	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/scene"
	"github.com/naijapath/routeviz/internal/service"
)

// RouteService defines the request orchestration used by RouteHandler.
type RouteService interface {
	RunRoute(ctx context.Context, origin, destination string, speed time.Duration) (*models.PathResult, error)
	Reset()
	Status() service.Status
	Panel() service.Panel
	DefaultSpeed() time.Duration
}

// SceneService defines the renderer operations used by SceneHandler.
type SceneService interface {
	Snapshot() *scene.Snapshot
	WriteSVG(w io.Writer) error
	HoverEnter(id string) error
	HoverLeave(id string) error
}

// HistoryReader lists recently finished route requests.
type HistoryReader interface {
	Recent(n int) []service.HistoryEntry
}

// ReadinessChecker reports whether a dependency is reachable.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// EventCursor reports the ID of the most recently streamed event.
type EventCursor interface {
	LastEventID() uint64
	ClientCount() int
}
