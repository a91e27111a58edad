package animation

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/metrics"
	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/scene"
)

// Stage is the part of the scene renderer the controller drives.
type Stage interface {
	SetNodeStyle(sel scene.NodeSelector, role models.Role, style models.Style, t scene.Timing) int
	SetEdgeStyle(sel scene.EdgeSelector, role models.Role, style models.Style, t scene.Timing) int
}

// Controller dispatches the animation of a route onto a Stage.
type Controller struct {
	stage Stage
	graph *models.Graph
	log   *logrus.Logger
}

// NewController creates a Controller that validates routes against graph.
func NewController(stage Stage, graph *models.Graph, log *logrus.Logger) *Controller {
	return &Controller{stage: stage, graph: graph, log: log}
}

// Animate validates result against the graph, then schedules every step and
// returns without waiting for any of them. It returns the number of steps
// dispatched. Nothing is scheduled when validation fails.
func (c *Controller) Animate(result *models.PathResult, speed time.Duration) (int, error) {
	if result == nil {
		return 0, models.ErrEmptyPath
	}

	if err := c.graph.ValidatePath(result.Path); err != nil {
		return 0, err
	}

	steps, err := Plan(result, speed)
	if err != nil {
		return 0, err
	}

	for _, step := range steps {
		if err := c.dispatch(step); err != nil {
			return 0, err
		}
	}

	c.log.WithFields(logrus.Fields{
		"origin":      result.Origin(),
		"destination": result.Destination(),
		"steps":       len(steps),
		"span":        Span(steps).String(),
	}).Debug("route animation dispatched")

	return len(steps), nil
}

func (c *Controller) dispatch(step models.AnimationStep) error {
	style, ok := scene.RoleStyle(step.Role)
	if !ok {
		return fmt.Errorf("no style for role %q", step.Role)
	}

	timing := scene.Timing{Delay: step.Delay, Duration: step.Duration}

	var matched int
	switch t := step.Target.(type) {
	case models.NodeTarget:
		matched = c.stage.SetNodeStyle(scene.NodeID(t.ID), step.Role, style, timing)
	case models.EdgeTarget:
		matched = c.stage.SetEdgeStyle(scene.Between(t.A, t.B), step.Role, style, timing)
	default:
		return fmt.Errorf("unsupported animation target %T", step.Target)
	}

	if matched == 0 {
		c.log.WithField("target", step.Target.String()).Warn("animation step matched no scene element")
	}

	metrics.AnimationStepsTotal.WithLabelValues(string(step.Role)).Inc()

	return nil
}
