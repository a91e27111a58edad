// Package animation turns a computed route into a timed sequence of scene
// style changes.
package animation

import (
	"fmt"
	"time"

	"github.com/naijapath/routeviz/internal/models"
)

// Animation speed bounds. Speed is the configured per-step base duration.
const (
	MinSpeed     = 300 * time.Millisecond
	MaxSpeed     = 2000 * time.Millisecond
	SpeedStep    = 100 * time.Millisecond
	DefaultSpeed = 1000 * time.Millisecond
)

// Fixed transition durations. They do not scale with speed.
const (
	MarkerDuration  = 500 * time.Millisecond
	TransitDuration = 400 * time.Millisecond
	EdgeDuration    = 800 * time.Millisecond
)

// ValidateSpeed checks that speed lies in [MinSpeed, MaxSpeed] on a
// SpeedStep boundary.
func ValidateSpeed(speed time.Duration) error {
	if speed < MinSpeed || speed > MaxSpeed || speed%SpeedStep != 0 {
		return fmt.Errorf("%w: %dms (want %d-%dms in steps of %dms)", models.ErrInvalidSpeed,
			speed.Milliseconds(), MinSpeed.Milliseconds(), MaxSpeed.Milliseconds(), SpeedStep.Milliseconds())
	}

	return nil
}

// SpeedLabel renders speed in seconds with one decimal, e.g. "1.0s".
func SpeedLabel(speed time.Duration) string {
	return fmt.Sprintf("%.1fs", speed.Seconds())
}

// StepUnit is the stagger between consecutive transit nodes.
func StepUnit(speed time.Duration) time.Duration {
	return speed * 3 / 10
}

// EdgeStepUnit is the stagger between consecutive path edges.
func EdgeStepUnit(speed time.Duration) time.Duration {
	return speed / 2
}

// Plan derives the deterministic step sequence for result: origin and
// destination markers first, then transit nodes, then path edges.
func Plan(result *models.PathResult, speed time.Duration) ([]models.AnimationStep, error) {
	if result == nil || len(result.Path) == 0 {
		return nil, models.ErrEmptyPath
	}

	if err := ValidateSpeed(speed); err != nil {
		return nil, err
	}

	path := result.Path
	last := len(path) - 1
	steps := make([]models.AnimationStep, 0, 2*len(path))

	steps = append(steps, models.AnimationStep{
		Target:   models.NodeTarget{ID: path[0]},
		Role:     models.RoleOrigin,
		Duration: MarkerDuration,
	})

	// A single-node path only gets its origin marker.
	if last == 0 {
		return steps, nil
	}

	steps = append(steps, models.AnimationStep{
		Target:   models.NodeTarget{ID: path[last]},
		Role:     models.RoleDestination,
		Duration: MarkerDuration,
	})

	node := StepUnit(speed)
	for i := 1; i < last; i++ {
		steps = append(steps, models.AnimationStep{
			Target:   models.NodeTarget{ID: path[i]},
			Role:     models.RoleTransit,
			Delay:    time.Duration(i) * node,
			Duration: TransitDuration,
		})
	}

	edge := EdgeStepUnit(speed)
	for i := 0; i < last; i++ {
		steps = append(steps, models.AnimationStep{
			Target:   models.EdgeTarget{A: path[i], B: path[i+1]},
			Role:     models.RolePathEdge,
			Delay:    time.Duration(i) * edge,
			Duration: EdgeDuration,
		})
	}

	return steps, nil
}

// Span is the wall-clock time from dispatch until the last step settles.
func Span(steps []models.AnimationStep) time.Duration {
	var span time.Duration
	for _, s := range steps {
		if end := s.Delay + s.Duration; end > span {
			span = end
		}
	}

	return span
}
