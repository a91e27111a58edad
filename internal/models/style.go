package models

import (
	"fmt"
	"time"
)

// Role is the highlight classification an entity receives during animation.
type Role string

// Highlight roles. RoleNone means the entity shows its base style.
const (
	RoleNone        Role = ""
	RoleOrigin      Role = "origin"
	RoleDestination Role = "destination"
	RoleTransit     Role = "transit"
	RolePathEdge    Role = "path-edge"
)

// Style is the visual tuple of one rendered element. Radius is the circle
// radius for nodes and unused for edges; StrokeWidth is the line width for
// edges.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke"`
	Radius      float64 `json:"radius,omitempty"`
	StrokeWidth float64 `json:"stroke_width"`
	Opacity     float64 `json:"opacity"`
}

// Target is what an animation step mutates. The set of implementations is
// closed: NodeTarget and EdgeTarget.
type Target interface {
	isTarget()
	fmt.Stringer
}

// NodeTarget addresses a single node.
type NodeTarget struct {
	ID string
}

func (NodeTarget) isTarget() {}

func (t NodeTarget) String() string { return "node:" + t.ID }

// EdgeTarget addresses the edge joining A and B in either direction.
type EdgeTarget struct {
	A, B string
}

func (EdgeTarget) isTarget() {}

func (t EdgeTarget) String() string { return "edge:" + t.A + "--" + t.B }

// AnimationStep is one scheduled style mutation derived from a PathResult.
type AnimationStep struct {
	Target   Target
	Role     Role
	Delay    time.Duration
	Duration time.Duration
}
