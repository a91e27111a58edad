package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naijapath/routeviz/internal/api"
	"github.com/naijapath/routeviz/internal/clock"
	"github.com/naijapath/routeviz/internal/scene"
)

func newSceneRouter(t *testing.T, events api.EventCursor) (*gin.Engine, *scene.Renderer) {
	t.Helper()

	rend := scene.NewRenderer(clock.NewManual(time.Unix(0, 0)), testLogger(), nil)
	rend.Build(testGraph(t))

	return sceneRoutes(rend, events), rend
}

func sceneRoutes(s api.SceneService, events api.EventCursor) *gin.Engine {
	r := gin.New()
	h := api.NewSceneHandler(s, events, testLogger())
	r.GET("/scene", h.Get)
	r.GET("/scene.svg", h.SVG)
	r.POST("/scene/nodes/:id/hover", h.HoverEnter)
	r.DELETE("/scene/nodes/:id/hover", h.HoverLeave)

	return r
}

func TestSceneGet(t *testing.T) {
	t.Parallel()

	r, _ := newSceneRouter(t, &mockCursor{last: 42})

	w := doRequest(r, http.MethodGet, "/scene", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Nodes       []scene.NodeView `json:"nodes"`
		Edges       []scene.EdgeView `json:"edges"`
		Width       int              `json:"width"`
		LastEventID uint64           `json:"last_event_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(body.Nodes) != 10 {
		t.Errorf("nodes = %d, want 10", len(body.Nodes))
	}
	if len(body.Edges) == 0 {
		t.Error("expected edges in snapshot")
	}
	if body.Width != scene.CanvasWidth {
		t.Errorf("width = %d, want %d", body.Width, scene.CanvasWidth)
	}
	if body.LastEventID != 42 {
		t.Errorf("last_event_id = %d, want 42", body.LastEventID)
	}
}

func TestSceneSVG(t *testing.T) {
	t.Parallel()

	r, _ := newSceneRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/scene.svg", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("body is not an svg document")
	}
}

func TestSceneSVG_RenderError(t *testing.T) {
	t.Parallel()

	s := &mockScene{
		writeSVGFn: func(io.Writer) error { return errors.New("template failure") },
	}

	w := doRequest(sceneRoutes(s, nil), http.MethodGet, "/scene.svg", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestSceneHover(t *testing.T) {
	t.Parallel()

	r, rend := newSceneRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/scene/nodes/Lagos/hover", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	n, ok := rend.Snapshot().Node("Lagos")
	if !ok || !n.Hovered {
		t.Errorf("Lagos hovered = %v, want true", n.Hovered)
	}

	w = doRequest(r, http.MethodDelete, "/scene/nodes/Lagos/hover", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["hovered"] != false {
		t.Errorf("hovered = %v, want false", body["hovered"])
	}
}

func TestSceneHover_UnknownNode(t *testing.T) {
	t.Parallel()

	r, _ := newSceneRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/scene/nodes/Atlantis/hover", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
