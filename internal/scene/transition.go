package scene

import (
	"fmt"
	"strconv"
	"time"

	"github.com/naijapath/routeviz/internal/models"
)

// transition moves an element from one style to another over dur.
type transition struct {
	from  models.Style
	to    models.Style
	start time.Time
	dur   time.Duration
}

func settled(s models.Style) transition {
	return transition{from: s, to: s}
}

func (t transition) progress(now time.Time) float64 {
	if t.dur <= 0 {
		return 1
	}

	elapsed := now.Sub(t.start)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= t.dur:
		return 1
	}

	return float64(elapsed) / float64(t.dur)
}

func (t transition) at(now time.Time) models.Style {
	p := t.progress(now)
	if p >= 1 {
		return t.to
	}

	return models.Style{
		Fill:        lerpColor(t.from.Fill, t.to.Fill, p),
		Stroke:      lerpColor(t.from.Stroke, t.to.Stroke, p),
		Radius:      lerp(t.from.Radius, t.to.Radius, p),
		StrokeWidth: lerp(t.from.StrokeWidth, t.to.StrokeWidth, p),
		Opacity:     lerp(t.from.Opacity, t.to.Opacity, p),
	}
}

func (t transition) active(now time.Time) bool {
	return t.progress(now) < 1
}

// hoverTrack eases a 0..1 hover level independently of the path style.
type hoverTrack struct {
	from  float64
	to    float64
	start time.Time
	dur   time.Duration
}

func (h hoverTrack) level(now time.Time) float64 {
	p := transition{start: h.start, dur: h.dur}.progress(now)

	return lerp(h.from, h.to, p)
}

func lerp(a, b, p float64) float64 {
	if p >= 1 {
		return b
	}

	return a + (b-a)*p
}

func lerpColor(a, b string, p float64) string {
	if a == b {
		return b
	}

	ar, ag, ab, okA := parseHex(a)
	br, bg, bb, okB := parseHex(b)

	if !okA || !okB {
		if p < 0.5 {
			return a
		}

		return b
	}

	mix := func(x, y uint8) uint8 {
		return uint8(lerp(float64(x), float64(y), p) + 0.5)
	}

	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

func parseHex(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
