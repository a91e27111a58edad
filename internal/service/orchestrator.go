// Package service coordinates route requests with the scene: it owns the
// request state machine and decides when an animation may start.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/animation"
	"github.com/naijapath/routeviz/internal/clock"
	"github.com/naijapath/routeviz/internal/metrics"
	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/routesvc"
)

// MsgSameEndpoints is shown when origin and destination are the same state.
const MsgSameEndpoints = "Origin and destination must be different states"

// DefaultGraceDelay lets the reset transition settle before a new animation.
const DefaultGraceDelay = 500 * time.Millisecond

// Event types published by the orchestrator.
const (
	EventState     = "route.state"
	EventAnimation = "route.animation"
)

// ErrSuperseded is returned to a caller whose request was overtaken by a
// newer request or a reset before it completed.
var ErrSuperseded = errors.New("route request superseded")

// State is the request state machine position.
type State string

// Request states.
const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateFailed  State = "failed"
)

// RouteComputer computes shortest paths remotely.
type RouteComputer interface {
	ComputeRoute(ctx context.Context, from, to string) (*models.PathResult, error)
}

// Stage is the scene operation the orchestrator needs directly.
type Stage interface {
	ResetAll()
}

// Animator schedules the visual reveal of a route.
type Animator interface {
	Animate(result *models.PathResult, speed time.Duration) (int, error)
}

// Publisher receives state changes. Implementations must not block.
type Publisher interface {
	Publish(eventType string, data any)
}

// Recorder is told about every finished request.
type Recorder interface {
	Enqueue(entry *HistoryEntry)
}

// Deps are the collaborators of an Orchestrator. Sink and History may be nil.
type Deps struct {
	Graph    *models.Graph
	Routes   RouteComputer
	Stage    Stage
	Animator Animator
	Clock    clock.Clock
	Sink     Publisher
	History  Recorder
}

// Options tune an Orchestrator. A zero DefaultSpeed selects
// animation.DefaultSpeed; a zero GraceDelay animates immediately.
type Options struct {
	GraceDelay   time.Duration
	DefaultSpeed time.Duration
}

// RouteError is a failed request. Message is the single user-visible text.
type RouteError struct {
	Message string
	Err     error
}

func (e *RouteError) Error() string { return e.Message }

func (e *RouteError) Unwrap() error { return e.Err }

// Orchestrator runs the Idle → Loading → Success|Failed state machine. Every
// request and reset bumps a generation; responses and grace-delayed
// animations from an older generation are discarded.
type Orchestrator struct {
	deps  Deps
	grace time.Duration
	speed time.Duration
	log   *logrus.Logger

	mu          sync.Mutex
	gen         uint64
	state       State
	errMsg      string
	result      *models.PathResult
	origin      string
	destination string
	cancel      context.CancelFunc
	graceTimer  clock.Timer
	settleTimer clock.Timer
	animating   bool
}

// NewOrchestrator creates an idle Orchestrator.
func NewOrchestrator(deps Deps, opts Options, log *logrus.Logger) *Orchestrator {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if opts.GraceDelay < 0 {
		opts.GraceDelay = 0
	}
	if opts.DefaultSpeed == 0 {
		opts.DefaultSpeed = animation.DefaultSpeed
	}

	return &Orchestrator{
		deps:  deps,
		grace: opts.GraceDelay,
		speed: opts.DefaultSpeed,
		log:   log,
		state: StateIdle,
	}
}

// DefaultSpeed is the speed used when RunRoute is called with speed 0.
func (o *Orchestrator) DefaultSpeed() time.Duration { return o.speed }

// RunRoute validates the endpoints, resets the scene, asks the route service
// for a path and, on success, schedules the animation after the grace delay.
// It blocks until the service answers. A zero speed selects the default.
//
// Validation failures return *models.ValidationError without issuing a
// request. Service, transport and reference failures return *RouteError.
// ErrSuperseded means a newer request or a reset won the race.
func (o *Orchestrator) RunRoute(ctx context.Context, origin, destination string, speed time.Duration) (*models.PathResult, error) {
	if speed == 0 {
		speed = o.speed
	}

	if verr := o.validate(origin, destination, speed); verr != nil {
		o.mu.Lock()
		o.errMsg = verr.Message
		o.mu.Unlock()

		metrics.RouteRequestsTotal.WithLabelValues("invalid").Inc()
		o.publishState()

		return nil, verr
	}

	reqCtx, gen := o.begin(ctx, origin, destination)
	o.publishState()

	o.log.WithFields(logrus.Fields{
		"generation":  gen,
		"origin":      origin,
		"destination": destination,
	}).Info("route request started")

	res, err := o.deps.Routes.ComputeRoute(reqCtx, origin, destination)
	if err == nil {
		if verr := o.deps.Graph.ValidatePath(res.Path); verr != nil {
			err = verr
		}
	}

	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()

		metrics.StaleEffectsTotal.WithLabelValues("response").Inc()
		o.log.WithField("generation", gen).Debug("discarding superseded route response")

		return nil, ErrSuperseded
	}

	o.cancel = nil

	if err != nil {
		msg := failureMessage(err)
		o.state = StateFailed
		o.errMsg = msg
		o.mu.Unlock()

		metrics.RouteRequestsTotal.WithLabelValues("failed").Inc()
		o.log.WithFields(logrus.Fields{"generation": gen, "origin": origin, "destination": destination}).
			WithError(err).Warn("route request failed")
		o.record(origin, destination, nil, msg)
		o.publishState()

		return nil, &RouteError{Message: msg, Err: err}
	}

	o.state = StateSuccess
	o.result = res
	o.graceTimer = o.deps.Clock.AfterFunc(o.grace, func() {
		o.animate(gen, res, speed)
	})
	o.mu.Unlock()

	metrics.RouteRequestsTotal.WithLabelValues("success").Inc()
	o.log.WithFields(logrus.Fields{
		"generation":  gen,
		"origin":      origin,
		"destination": destination,
		"states":      len(res.Path),
	}).Info("route found")
	o.record(origin, destination, res, "")
	o.publishState()

	return res, nil
}

// Reset returns to Idle from any state, clears the result and error, cancels
// any in-flight request and pending animation, and resets the scene.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.gen++
	o.stopLocked()
	o.state = StateIdle
	o.errMsg = ""
	o.result = nil
	o.origin, o.destination = "", ""
	o.deps.Stage.ResetAll()
	gen := o.gen
	o.mu.Unlock()

	o.log.WithField("generation", gen).Info("route state reset")
	o.publishState()
}

// Status is a snapshot of the state machine.
type Status struct {
	State       State              `json:"state"`
	Loading     bool               `json:"loading"`
	Error       string             `json:"error"`
	Origin      string             `json:"origin,omitempty"`
	Destination string             `json:"destination,omitempty"`
	Result      *models.PathResult `json:"result"`
	PathInfo    *models.PathInfo   `json:"path_info"`
	Animating   bool               `json:"animating"`
	Generation  uint64             `json:"generation"`
}

// Status returns the current state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.statusLocked()
}

func (o *Orchestrator) statusLocked() Status {
	st := Status{
		State:       o.state,
		Loading:     o.state == StateLoading,
		Error:       o.errMsg,
		Origin:      o.origin,
		Destination: o.destination,
		Result:      o.result,
		Animating:   o.animating,
		Generation:  o.gen,
	}
	if o.result != nil {
		st.PathInfo = o.result.Info()
	}

	return st
}

func (o *Orchestrator) validate(origin, destination string, speed time.Duration) *models.ValidationError {
	if origin == destination {
		return &models.ValidationError{Field: "destination", Message: MsgSameEndpoints, Err: models.ErrSameEndpoints}
	}

	for _, f := range [...]struct{ name, id string }{{"origin", origin}, {"destination", destination}} {
		if !o.deps.Graph.HasNode(f.id) {
			lerr := &models.LookupError{ID: f.id}
			return &models.ValidationError{Field: f.name, Message: fmt.Sprintf("Invalid %s: %s", f.name, lerr), Err: lerr}
		}
	}

	if err := animation.ValidateSpeed(speed); err != nil {
		return &models.ValidationError{Field: "speed", Message: err.Error(), Err: err}
	}

	return nil
}

// begin enters Loading for a new generation and resets the scene once.
func (o *Orchestrator) begin(ctx context.Context, origin, destination string) (context.Context, uint64) {
	reqCtx, cancel := context.WithCancel(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.gen++
	o.stopLocked()
	o.cancel = cancel
	o.state = StateLoading
	o.errMsg = ""
	o.result = nil
	o.origin, o.destination = origin, destination
	o.deps.Stage.ResetAll()

	return reqCtx, o.gen
}

// stopLocked cancels the in-flight request and the pending animation.
func (o *Orchestrator) stopLocked() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	if o.graceTimer != nil {
		o.graceTimer.Stop()
		o.graceTimer = nil
	}
	if o.settleTimer != nil {
		o.settleTimer.Stop()
		o.settleTimer = nil
	}
	o.animating = false
}

func (o *Orchestrator) animate(gen uint64, res *models.PathResult, speed time.Duration) {
	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()

		metrics.StaleEffectsTotal.WithLabelValues("animation").Inc()
		o.log.WithField("generation", gen).Debug("skipping superseded route animation")

		return
	}

	o.graceTimer = nil
	steps, err := o.deps.Animator.Animate(res, speed)
	if err == nil {
		o.animating = true
		o.settleTimer = o.deps.Clock.AfterFunc(animationSpan(res, speed), func() {
			o.settle(gen)
		})
	}
	o.mu.Unlock()

	if err != nil {
		o.log.WithError(err).WithField("generation", gen).Error("route animation failed")
		return
	}

	o.publish(EventAnimation, map[string]any{
		"generation":   gen,
		"steps":        steps,
		"speed_ms":     speed.Milliseconds(),
		"speed_label":  animation.SpeedLabel(speed),
		"step_unit_ms": animation.StepUnit(speed).Milliseconds(),
		"edge_unit_ms": animation.EdgeStepUnit(speed).Milliseconds(),
	})
}

// settle clears the animating flag once every step of generation gen has
// finished its transition.
func (o *Orchestrator) settle(gen uint64) {
	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()

		metrics.StaleEffectsTotal.WithLabelValues("settle").Inc()

		return
	}

	o.settleTimer = nil
	o.animating = false
	o.mu.Unlock()

	o.log.WithField("generation", gen).Debug("route animation settled")
	o.publishState()
}

// animationSpan is how long the planned animation for res takes to settle.
func animationSpan(res *models.PathResult, speed time.Duration) time.Duration {
	steps, err := animation.Plan(res, speed)
	if err != nil {
		return 0
	}

	return animation.Span(steps)
}

func (o *Orchestrator) record(origin, destination string, res *models.PathResult, msg string) {
	if o.deps.History == nil {
		return
	}

	entry := &HistoryEntry{
		Origin:      origin,
		Destination: destination,
		Outcome:     "success",
		Error:       msg,
		At:          o.deps.Clock.Now(),
	}
	if res == nil {
		entry.Outcome = "failed"
	} else {
		entry.Path = res.Path
		entry.Distance = res.Distance
	}

	o.deps.History.Enqueue(entry)
}

func (o *Orchestrator) publishState() {
	o.publish(EventState, o.Status())
}

func (o *Orchestrator) publish(eventType string, data any) {
	if o.deps.Sink != nil {
		o.deps.Sink.Publish(eventType, data)
	}
}

// failureMessage picks the most specific user-visible text for err.
func failureMessage(err error) string {
	var (
		svcErr       *routesvc.ServiceError
		transportErr *routesvc.TransportError
		refErr       *models.ReferenceError
	)

	switch {
	case errors.As(err, &svcErr):
		return svcErr.Message
	case errors.As(err, &transportErr):
		return transportErr.Error()
	case errors.As(err, &refErr):
		return refErr.Error()
	case errors.Is(err, models.ErrEmptyPath):
		return routesvc.MsgInvalidResponse
	default:
		return routesvc.MsgCalculateFailed
	}
}
