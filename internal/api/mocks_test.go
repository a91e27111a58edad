package api_test

import (
	"context"
	"io"
	"time"

	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/scene"
	"github.com/naijapath/routeviz/internal/service"
)

// mockRouteService implements api.RouteService for testing.
type mockRouteService struct {
	runFn    func(ctx context.Context, origin, destination string, speed time.Duration) (*models.PathResult, error)
	resetFn  func()
	statusFn func() service.Status
	panelFn  func() service.Panel
}

func (m *mockRouteService) RunRoute(ctx context.Context, origin, destination string, speed time.Duration) (*models.PathResult, error) {
	return m.runFn(ctx, origin, destination, speed)
}

func (m *mockRouteService) Reset() {
	if m.resetFn != nil {
		m.resetFn()
	}
}

func (m *mockRouteService) Status() service.Status {
	if m.statusFn == nil {
		return service.Status{State: service.StateIdle}
	}

	return m.statusFn()
}

func (m *mockRouteService) Panel() service.Panel {
	if m.panelFn == nil {
		return service.Panel{}
	}

	return m.panelFn()
}

func (m *mockRouteService) DefaultSpeed() time.Duration { return time.Second }

// mockScene implements api.SceneService for testing.
type mockScene struct {
	snapshotFn   func() *scene.Snapshot
	writeSVGFn   func(w io.Writer) error
	hoverEnterFn func(id string) error
	hoverLeaveFn func(id string) error
}

func (m *mockScene) Snapshot() *scene.Snapshot { return m.snapshotFn() }
func (m *mockScene) WriteSVG(w io.Writer) error { return m.writeSVGFn(w) }
func (m *mockScene) HoverEnter(id string) error { return m.hoverEnterFn(id) }
func (m *mockScene) HoverLeave(id string) error { return m.hoverLeaveFn(id) }

// mockHistory implements api.HistoryReader for testing.
type mockHistory struct {
	recentFn func(n int) []service.HistoryEntry
}

func (m *mockHistory) Recent(n int) []service.HistoryEntry { return m.recentFn(n) }

// mockPinger implements api.ReadinessChecker for testing.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

// mockCursor implements api.EventCursor for testing.
type mockCursor struct {
	last    uint64
	clients int
}

func (m *mockCursor) LastEventID() uint64 { return m.last }
func (m *mockCursor) ClientCount() int { return m.clients }
