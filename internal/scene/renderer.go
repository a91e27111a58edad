// Package scene owns the rendered state of every node and edge: an explicit
// registry of entity → style + active transition that can be snapshotted,
// rendered to SVG, and streamed to clients.
package scene

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/clock"
	"github.com/naijapath/routeviz/internal/metrics"
	"github.com/naijapath/routeviz/internal/models"
)

// Scene event types published to the sink.
const (
	EventBuilt      = "scene.built"
	EventTransition = "scene.transition"
	EventReset      = "scene.reset"
	EventHover      = "scene.hover"
)

// EventSink receives scene changes. Implementations must not block.
type EventSink interface {
	Publish(eventType string, data any)
}

// Timing schedules a transition: wait Delay, then animate over Duration.
type Timing struct {
	Delay    time.Duration
	Duration time.Duration
}

// NodeSelector picks the nodes a style call applies to.
type NodeSelector func(models.Node) bool

// EdgeSelector picks the edges a style call applies to.
type EdgeSelector func(models.Edge) bool

// NodeID selects the node with the given id.
func NodeID(id string) NodeSelector {
	return func(n models.Node) bool { return n.ID == id }
}

// Between selects the edge joining a and b in either stored direction.
func Between(a, b string) EdgeSelector {
	return func(e models.Edge) bool { return e.Connects(a, b) }
}

type element struct {
	node  models.Node
	edge  models.Edge
	base  models.Style
	role  models.Role
	tr    transition
	hover hoverTrack
}

// Renderer is the scene registry. All methods are safe for concurrent use.
type Renderer struct {
	mu        sync.Mutex
	clock     clock.Clock
	log       *logrus.Logger
	sink      EventSink
	nodes     []*element
	nodeIndex map[string]*element
	edges     []*element
	gen       uint64
	timerSeq  uint64
	pending   map[uint64]clock.Timer
}

// NewRenderer creates an empty Renderer. sink may be nil.
func NewRenderer(clk clock.Clock, log *logrus.Logger, sink EventSink) *Renderer {
	return &Renderer{
		clock:     clk,
		log:       log,
		sink:      sink,
		nodeIndex: make(map[string]*element),
		pending:   make(map[uint64]clock.Timer),
	}
}

// Build creates one element per node and edge. Calling it again discards the
// previous elements and every pending transition before rebuilding.
func (r *Renderer) Build(g *models.Graph) {
	r.mu.Lock()

	r.gen++
	r.stopPendingLocked()

	r.nodes = make([]*element, 0, g.NodeCount())
	r.edges = make([]*element, 0, g.EdgeCount())
	r.nodeIndex = make(map[string]*element, g.NodeCount())

	for _, n := range g.Nodes() {
		base := NodeBaseStyle(n.Region)
		el := &element{node: n, base: base, tr: settled(base)}
		r.nodes = append(r.nodes, el)
		r.nodeIndex[n.ID] = el
	}

	for _, e := range g.Edges() {
		base := EdgeBaseStyle()
		r.edges = append(r.edges, &element{edge: e, base: base, tr: settled(base)})
	}

	gen := r.gen
	nodes, edges := len(r.nodes), len(r.edges)
	r.mu.Unlock()

	metrics.SceneElements.WithLabelValues("node").Set(float64(nodes))
	metrics.SceneElements.WithLabelValues("edge").Set(float64(edges))

	r.publish(EventBuilt, map[string]any{"generation": gen, "nodes": nodes, "edges": edges})
	r.log.WithFields(logrus.Fields{"nodes": nodes, "edges": edges}).Info("scene built")
}

// SetNodeStyle schedules a transition to style on every matching node and
// returns how many matched. No match is a no-op.
func (r *Renderer) SetNodeStyle(sel NodeSelector, role models.Role, style models.Style, t Timing) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var targets []*element
	for _, el := range r.nodes {
		if sel(el.node) {
			targets = append(targets, el)
		}
	}

	r.scheduleLocked(targets, role, style, t)

	return len(targets)
}

// SetEdgeStyle is SetNodeStyle for edges.
func (r *Renderer) SetEdgeStyle(sel EdgeSelector, role models.Role, style models.Style, t Timing) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var targets []*element
	for _, el := range r.edges {
		if sel(el.edge) {
			targets = append(targets, el)
		}
	}

	r.scheduleLocked(targets, role, style, t)

	return len(targets)
}

// ResetAll returns every element to its base style over ResetDuration.
// It bumps the generation and stops every pending transition, so nothing
// scheduled before the reset can fire afterwards.
func (r *Renderer) ResetAll() {
	r.mu.Lock()

	r.gen++
	r.stopPendingLocked()

	now := r.clock.Now()
	for _, el := range r.nodes {
		r.applyLocked(el, models.RoleNone, el.base, ResetDuration, now)
	}

	for _, el := range r.edges {
		r.applyLocked(el, models.RoleNone, el.base, ResetDuration, now)
	}

	gen := r.gen
	r.mu.Unlock()

	r.publish(EventReset, map[string]any{"generation": gen, "duration_ms": ResetDuration.Milliseconds()})
}

// Generation returns the current scene generation.
func (r *Renderer) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.gen
}

// Pending returns the number of scheduled transitions that have not fired.
func (r *Renderer) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}

func (r *Renderer) scheduleLocked(targets []*element, role models.Role, style models.Style, t Timing) {
	if len(targets) == 0 {
		return
	}

	if t.Delay <= 0 {
		now := r.clock.Now()
		for _, el := range targets {
			r.applyLocked(el, role, style, t.Duration, now)
		}

		return
	}

	r.timerSeq++
	id := r.timerSeq
	gen := r.gen

	r.pending[id] = r.clock.AfterFunc(t.Delay, func() {
		r.fire(id, gen, targets, role, style, t.Duration)
	})
}

func (r *Renderer) fire(id, gen uint64, targets []*element, role models.Role, style models.Style, dur time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, id)

	if gen != r.gen {
		metrics.StaleEffectsTotal.WithLabelValues("step").Inc()
		r.log.WithFields(logrus.Fields{"generation": gen, "current": r.gen}).Debug("skipping stale scene transition")

		return
	}

	now := r.clock.Now()
	for _, el := range targets {
		r.applyLocked(el, role, style, dur, now)
	}
}

// applyLocked starts a transition from the element's current on-screen style.
func (r *Renderer) applyLocked(el *element, role models.Role, style models.Style, dur time.Duration, now time.Time) {
	el.tr = transition{from: el.tr.at(now), to: style, start: now, dur: dur}
	el.role = role

	if r.sink == nil {
		return
	}

	r.sink.Publish(EventTransition, transitionEvent{
		Target:     targetName(el),
		Role:       role,
		Style:      style,
		DurationMS: dur.Milliseconds(),
		Generation: r.gen,
	})
}

func (r *Renderer) stopPendingLocked() {
	for id, t := range r.pending {
		t.Stop()
		delete(r.pending, id)
	}
}

func (r *Renderer) publish(eventType string, data any) {
	if r.sink != nil {
		r.sink.Publish(eventType, data)
	}
}

type transitionEvent struct {
	Target     string       `json:"target"`
	Role       models.Role  `json:"role,omitempty"`
	Style      models.Style `json:"style"`
	DurationMS int64        `json:"duration_ms"`
	Generation uint64       `json:"generation"`
}

func targetName(el *element) string {
	if el.node.ID != "" {
		return models.NodeTarget{ID: el.node.ID}.String()
	}

	return models.EdgeTarget{A: el.edge.Source, B: el.edge.Target}.String()
}
