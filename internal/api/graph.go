package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/animation"
	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/scene"
)

// Default endpoint selection offered to a fresh client.
const (
	DefaultOrigin      = "Lagos"
	DefaultDestination = "Abuja"
)

// GraphHandler serves the static topology and the control surface built from it.
type GraphHandler struct {
	graph *models.Graph
	speed int64
	log   *logrus.Logger
}

// NewGraphHandler creates a GraphHandler. defaultSpeedMS seeds the speed control.
func NewGraphHandler(graph *models.Graph, defaultSpeedMS int64, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{graph: graph, speed: defaultSpeedMS, log: log}
}

type canvasInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type graphResponse struct {
	Nodes  []models.Node       `json:"nodes"`
	Edges  []models.Edge       `json:"edges"`
	Legend []scene.LegendEntry `json:"legend"`
	Canvas canvasInfo          `json:"canvas"`
}

// Get handles GET /api/v1/graph.
func (h *GraphHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, graphResponse{
		Nodes:  h.graph.Nodes(),
		Edges:  h.graph.Edges(),
		Legend: scene.Legend(),
		Canvas: canvasInfo{Width: scene.CanvasWidth, Height: scene.CanvasHeight},
	})
}

// StateOption is one entry of the origin/destination selectors.
type StateOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SpeedControl describes the animation speed slider in milliseconds.
type SpeedControl struct {
	Min     int64  `json:"min"`
	Max     int64  `json:"max"`
	Step    int64  `json:"step"`
	Default int64  `json:"default"`
	Label   string `json:"label"`
}

// Controls is the interaction surface definition.
type Controls struct {
	States             []StateOption `json:"states"`
	DefaultOrigin      string        `json:"default_origin"`
	DefaultDestination string        `json:"default_destination"`
	Speed              SpeedControl  `json:"speed"`
}

// Controls handles GET /api/v1/controls.
func (h *GraphHandler) Controls(c *gin.Context) {
	nodes := h.graph.Nodes()
	states := make([]StateOption, 0, len(nodes))
	for _, n := range nodes {
		states = append(states, StateOption{ID: n.ID, Label: n.Label})
	}

	ctrl := Controls{
		States: states,
		Speed: SpeedControl{
			Min:     animation.MinSpeed.Milliseconds(),
			Max:     animation.MaxSpeed.Milliseconds(),
			Step:    animation.SpeedStep.Milliseconds(),
			Default: h.speed,
			Label:   animation.SpeedLabel(msToDuration(h.speed)),
		},
	}

	if h.graph.HasNode(DefaultOrigin) && h.graph.HasNode(DefaultDestination) {
		ctrl.DefaultOrigin, ctrl.DefaultDestination = DefaultOrigin, DefaultDestination
	} else if len(nodes) >= 2 {
		ctrl.DefaultOrigin, ctrl.DefaultDestination = nodes[0].ID, nodes[len(nodes)-1].ID
	}

	c.JSON(http.StatusOK, ctrl)
}
