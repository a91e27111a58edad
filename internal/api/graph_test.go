package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/naijapath/routeviz/internal/api"
)

func TestGraphGet(t *testing.T) {
	t.Parallel()

	g := testGraph(t)
	h := api.NewGraphHandler(g, 1000, testLogger())

	r := gin.New()
	r.GET("/graph", h.Get)

	w := doRequest(r, http.MethodGet, "/graph", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Nodes  []map[string]any `json:"nodes"`
		Edges  []map[string]any `json:"edges"`
		Legend []map[string]any `json:"legend"`
		Canvas struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"canvas"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(body.Nodes) != g.NodeCount() {
		t.Errorf("nodes = %d, want %d", len(body.Nodes), g.NodeCount())
	}
	if len(body.Edges) != g.EdgeCount() {
		t.Errorf("edges = %d, want %d", len(body.Edges), g.EdgeCount())
	}
	if len(body.Legend) != 9 {
		t.Errorf("legend entries = %d, want 9", len(body.Legend))
	}
	if body.Canvas.Width != 1000 || body.Canvas.Height != 500 {
		t.Errorf("canvas = %+v, want 1000x500", body.Canvas)
	}
}

func TestGraphControls(t *testing.T) {
	t.Parallel()

	h := api.NewGraphHandler(testGraph(t), 1200, testLogger())

	r := gin.New()
	r.GET("/controls", h.Controls)

	w := doRequest(r, http.MethodGet, "/controls", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var ctrl api.Controls
	if err := json.Unmarshal(w.Body.Bytes(), &ctrl); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if ctrl.DefaultOrigin != "Lagos" || ctrl.DefaultDestination != "Abuja" {
		t.Errorf("defaults = %s/%s, want Lagos/Abuja", ctrl.DefaultOrigin, ctrl.DefaultDestination)
	}
	if len(ctrl.States) != 10 {
		t.Errorf("states = %d, want 10", len(ctrl.States))
	}

	want := api.SpeedControl{Min: 300, Max: 2000, Step: 100, Default: 1200, Label: "1.2s"}
	if ctrl.Speed != want {
		t.Errorf("speed = %+v, want %+v", ctrl.Speed, want)
	}
}
