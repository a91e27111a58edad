package scene

import (
	"time"

	"github.com/naijapath/routeviz/internal/models"
)

// NodeView is the on-screen state of one node at snapshot time.
type NodeView struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Region    models.Region `json:"region"`
	Role      models.Role   `json:"role,omitempty"`
	Style     models.Style  `json:"style"`
	Hovered   bool          `json:"hovered"`
	Animating bool          `json:"animating"`
}

// EdgeView is the on-screen state of one edge at snapshot time.
type EdgeView struct {
	Source    string       `json:"source"`
	Target    string       `json:"target"`
	Weight    float64      `json:"weight"`
	X1        float64      `json:"x1"`
	Y1        float64      `json:"y1"`
	X2        float64      `json:"x2"`
	Y2        float64      `json:"y2"`
	Role      models.Role  `json:"role,omitempty"`
	Style     models.Style `json:"style"`
	Animating bool         `json:"animating"`
}

// LabelX is the x position of the weight label (edge midpoint).
func (e EdgeView) LabelX() float64 { return (e.X1 + e.X2) / 2 }

// LabelY is the y position of the weight label, just above the midpoint.
func (e EdgeView) LabelY() float64 { return (e.Y1+e.Y2)/2 - 5 }

// Snapshot is a point-in-time copy of the whole registry.
type Snapshot struct {
	Generation uint64     `json:"generation"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Time       time.Time  `json:"time"`
	Pending    int        `json:"pending"`
	Nodes      []NodeView `json:"nodes"`
	Edges      []EdgeView `json:"edges"`
}

// Node returns the view for id.
func (s *Snapshot) Node(id string) (NodeView, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}

	return NodeView{}, false
}

// Edge returns the view of the edge joining a and b in either direction.
func (s *Snapshot) Edge(a, b string) (EdgeView, bool) {
	for _, e := range s.Edges {
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return e, true
		}
	}

	return EdgeView{}, false
}

// Snapshot captures the interpolated style of every element, hover included.
func (r *Renderer) Snapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	snap := &Snapshot{
		Generation: r.gen,
		Width:      CanvasWidth,
		Height:     CanvasHeight,
		Time:       now,
		Pending:    len(r.pending),
		Nodes:      make([]NodeView, 0, len(r.nodes)),
		Edges:      make([]EdgeView, 0, len(r.edges)),
	}

	for _, el := range r.nodes {
		style := el.tr.at(now)
		lvl := el.hover.level(now)
		style.Radius += lvl * hoverRadiusBoost
		style.StrokeWidth += lvl * hoverStrokeBoost

		snap.Nodes = append(snap.Nodes, NodeView{
			ID:        el.node.ID,
			Label:     el.node.Label,
			X:         el.node.X,
			Y:         el.node.Y,
			Region:    el.node.Region,
			Role:      el.role,
			Style:     style,
			Hovered:   el.hover.to == 1,
			Animating: el.tr.active(now) || lvl != el.hover.to,
		})
	}

	for _, el := range r.edges {
		src, dst := r.nodeIndex[el.edge.Source], r.nodeIndex[el.edge.Target]
		view := EdgeView{
			Source:    el.edge.Source,
			Target:    el.edge.Target,
			Weight:    el.edge.Weight,
			Role:      el.role,
			Style:     el.tr.at(now),
			Animating: el.tr.active(now),
		}

		if src != nil && dst != nil {
			view.X1, view.Y1 = src.node.X, src.node.Y
			view.X2, view.Y2 = dst.node.X, dst.node.Y
		}

		snap.Edges = append(snap.Edges, view)
	}

	return snap
}
