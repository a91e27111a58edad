package scene

import "github.com/naijapath/routeviz/internal/models"

// HoverEnter enlarges a node's radius and stroke over HoverDuration. The
// effect is layered on top of whatever path style is active and never
// touches roles or the generation.
func (r *Renderer) HoverEnter(id string) error {
	return r.hover(id, 1)
}

// HoverLeave reverts HoverEnter.
func (r *Renderer) HoverLeave(id string) error {
	return r.hover(id, 0)
}

func (r *Renderer) hover(id string, to float64) error {
	r.mu.Lock()

	el, ok := r.nodeIndex[id]
	if !ok {
		r.mu.Unlock()

		return &models.LookupError{ID: id}
	}

	now := r.clock.Now()
	el.hover = hoverTrack{from: el.hover.level(now), to: to, start: now, dur: HoverDuration}
	r.mu.Unlock()

	r.publish(EventHover, map[string]any{"id": id, "hovered": to == 1, "duration_ms": HoverDuration.Milliseconds()})

	return nil
}
