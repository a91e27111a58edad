package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naijapath/routeviz/internal/animation"
	"github.com/naijapath/routeviz/internal/clock"
	"github.com/naijapath/routeviz/internal/models"
	"github.com/naijapath/routeviz/internal/routesvc"
)

// mockRoutes returns configured responses and counts calls.
type mockRoutes struct {
	mu    sync.Mutex
	calls int

	compute func(ctx context.Context, from, to string) (*models.PathResult, error)
}

func (m *mockRoutes) ComputeRoute(ctx context.Context, from, to string) (*models.PathResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.compute(ctx, from, to)
}

func (m *mockRoutes) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockStage struct {
	mu     sync.Mutex
	resets int
}

func (m *mockStage) ResetAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
}

func (m *mockStage) resetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

type animateCall struct {
	path  []string
	speed time.Duration
}

type mockAnimator struct {
	mu    sync.Mutex
	calls []animateCall
	err   error
}

func (m *mockAnimator) Animate(result *models.PathResult, speed time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, animateCall{path: result.Path, speed: speed})
	return len(result.Path), m.err
}

func (m *mockAnimator) getCalls() []animateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]animateCall(nil), m.calls...)
}

type mockSink struct {
	mu     sync.Mutex
	states []State
	events []string
}

func (m *mockSink) Publish(eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, eventType)
	if st, ok := data.(Status); ok {
		m.states = append(m.states, st.State)
	}
}

func (m *mockSink) getStates() []State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]State(nil), m.states...)
}

type fixture struct {
	orch     *Orchestrator
	routes   *mockRoutes
	stage    *mockStage
	animator *mockAnimator
	sink     *mockSink
	clock    *clock.Manual
}

func scenarioGraph(t *testing.T) *models.Graph {
	t.Helper()

	g, err := models.NewGraph(
		[]models.Node{
			{ID: "Lagos", Label: "Lagos", X: 0, Y: 0, Region: models.RegionSouth},
			{ID: "Oyo", Label: "Oyo", X: 1, Y: 1, Region: models.RegionSouth},
			{ID: "Abuja", Label: "FCT", X: 2, Y: 2, Region: models.RegionCentral},
		},
		[]models.Edge{
			{Source: "Lagos", Target: "Oyo", Weight: 150},
			{Source: "Oyo", Target: "Abuja", Weight: 250},
		},
	)
	require.NoError(t, err)

	return g
}

func scenarioResult() *models.PathResult {
	return &models.PathResult{
		Path:          []string{"Lagos", "Oyo", "Abuja"},
		Distance:      400,
		DistanceUnit:  "km",
		OriginID:      "Lagos",
		DestinationID: "Abuja",
		TotalStates:   3,
	}
}

func newFixture(t *testing.T, compute func(ctx context.Context, from, to string) (*models.PathResult, error)) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	f := &fixture{
		routes:   &mockRoutes{compute: compute},
		stage:    &mockStage{},
		animator: &mockAnimator{},
		sink:     &mockSink{},
		clock:    clock.NewManual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	f.orch = NewOrchestrator(Deps{
		Graph:    scenarioGraph(t),
		Routes:   f.routes,
		Stage:    f.stage,
		Animator: f.animator,
		Clock:    f.clock,
		Sink:     f.sink,
	}, Options{GraceDelay: DefaultGraceDelay}, log)

	return f
}

func succeed(context.Context, string, string) (*models.PathResult, error) {
	return scenarioResult(), nil
}

func TestRunRoute_Success(t *testing.T) {
	f := newFixture(t, succeed)

	res, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lagos", "Oyo", "Abuja"}, res.Path)

	assert.Equal(t, 1, f.stage.resetCount(), "scene reset exactly once on entering Loading")
	assert.Equal(t, []State{StateLoading, StateSuccess}, f.sink.getStates())

	st := f.orch.Status()
	assert.Equal(t, StateSuccess, st.State)
	assert.Empty(t, st.Error)
	require.NotNil(t, st.PathInfo)

	// Animation waits for the grace delay.
	assert.Empty(t, f.animator.getCalls())
	f.clock.Advance(DefaultGraceDelay - time.Millisecond)
	assert.Empty(t, f.animator.getCalls())
	f.clock.Advance(time.Millisecond)

	calls := f.animator.getCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, time.Second, calls[0].speed)
	assert.True(t, f.orch.Status().Animating)
}

func TestRunRoute_AnimatingClearsWhenSettled(t *testing.T) {
	f := newFixture(t, succeed)

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
	require.NoError(t, err)
	f.clock.Advance(DefaultGraceDelay)
	require.True(t, f.orch.Status().Animating)

	steps, err := animation.Plan(scenarioResult(), time.Second)
	require.NoError(t, err)
	span := animation.Span(steps)
	require.Positive(t, span)

	f.clock.Advance(span - time.Millisecond)
	assert.True(t, f.orch.Status().Animating, "still animating before the last step settles")

	f.clock.Advance(time.Millisecond)
	st := f.orch.Status()
	assert.False(t, st.Animating)
	assert.Equal(t, StateSuccess, st.State, "the result stays until the next run or reset")
	assert.Zero(t, f.clock.Pending())

	states := f.sink.getStates()
	assert.Equal(t, StateSuccess, states[len(states)-1], "settling publishes a state event")

	f.clock.Advance(time.Hour)
	assert.False(t, f.orch.Status().Animating)
}

func TestReset_StopsSettleTimer(t *testing.T) {
	f := newFixture(t, succeed)

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
	require.NoError(t, err)
	f.clock.Advance(DefaultGraceDelay)
	require.Equal(t, 1, f.clock.Pending())

	f.orch.Reset()
	assert.Zero(t, f.clock.Pending())
	assert.False(t, f.orch.Status().Animating)
}

func TestRunRoute_PanelScenario(t *testing.T) {
	f := newFixture(t, succeed)

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
	require.NoError(t, err)

	p := f.orch.Panel()
	assert.Equal(t, "Lagos → Oyo → Abuja", p.Path)
	assert.Equal(t, "400 km", p.Distance)
	assert.Equal(t, "3", p.States)
	assert.Equal(t, "Multi-hop", p.RouteType)
	assert.Equal(t, PanelStatusFound, p.Status)
	assert.Equal(t, 3, p.TotalStates)
	assert.Equal(t, 2, p.Connections)
}

func TestRunRoute_SameEndpoints(t *testing.T) {
	f := newFixture(t, succeed)

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Lagos", 0)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, MsgSameEndpoints, verr.Message)
	assert.ErrorIs(t, err, models.ErrSameEndpoints)

	assert.Zero(t, f.routes.callCount(), "no request may be issued")
	assert.Zero(t, f.stage.resetCount())

	st := f.orch.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, MsgSameEndpoints, st.Error)
}

func TestRunRoute_InvalidInput(t *testing.T) {
	f := newFixture(t, succeed)

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Kano", 0)
	assert.ErrorIs(t, err, models.ErrNodeNotFound)

	_, err = f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 250*time.Millisecond)
	assert.ErrorIs(t, err, models.ErrInvalidSpeed)

	assert.Zero(t, f.routes.callCount())
}

func TestRunRoute_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		result  *models.PathResult
		wantMsg string
	}{
		{
			name:    "server message verbatim",
			err:     &routesvc.ServiceError{StatusCode: 200, Message: "no route found"},
			wantMsg: "no route found",
		},
		{
			name:    "transport",
			err:     &routesvc.TransportError{Err: errors.New("dial tcp: connection refused")},
			wantMsg: "Failed to connect to route service: dial tcp: connection refused",
		},
		{
			name:    "unknown state in path",
			result:  &models.PathResult{Path: []string{"Lagos", "Kano", "Abuja"}},
			wantMsg: `route references unknown state "Kano"`,
		},
		{
			name:    "missing connection",
			result:  &models.PathResult{Path: []string{"Lagos", "Abuja"}},
			wantMsg: `route has no connection between "Lagos" and "Abuja"`,
		},
		{
			name:    "unclassified",
			err:     errors.New("boom"),
			wantMsg: routesvc.MsgCalculateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(context.Context, string, string) (*models.PathResult, error) {
				return tt.result, tt.err
			})

			res, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
			assert.Nil(t, res)

			var rerr *RouteError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.wantMsg, rerr.Message)

			st := f.orch.Status()
			assert.Equal(t, StateFailed, st.State)
			assert.Equal(t, tt.wantMsg, st.Error)
			assert.Nil(t, st.Result)

			p := f.orch.Panel()
			assert.Equal(t, PanelPrompt, p.Prompt)
			assert.Empty(t, p.Path)

			f.clock.Advance(time.Minute)
			assert.Empty(t, f.animator.getCalls(), "a failed request never animates")
		})
	}
}

func TestReset_Idempotent(t *testing.T) {
	f := newFixture(t, succeed)

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
	require.NoError(t, err)

	f.orch.Reset()
	first := f.orch.Status()
	f.orch.Reset()
	second := f.orch.Status()

	for _, st := range []Status{first, second} {
		assert.Equal(t, StateIdle, st.State)
		assert.Nil(t, st.Result)
		assert.Nil(t, st.PathInfo)
		assert.Empty(t, st.Error)
		assert.False(t, st.Animating)
	}
	assert.Equal(t, 3, f.stage.resetCount())
}

func TestReset_CancelsGraceDelayedAnimation(t *testing.T) {
	f := newFixture(t, succeed)

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
	require.NoError(t, err)

	f.orch.Reset()
	f.clock.Advance(time.Second)

	assert.Empty(t, f.animator.getCalls())
	assert.Zero(t, f.clock.Pending())
}

func TestReset_DiscardsInFlightResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := newFixture(t, func(context.Context, string, string) (*models.PathResult, error) {
		close(started)
		<-release
		return scenarioResult(), nil
	})

	errCh := make(chan error, 1)
	go func() {
		_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
		errCh <- err
	}()

	<-started
	assert.True(t, f.orch.Status().Loading)

	f.orch.Reset()
	close(release)

	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	st := f.orch.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Nil(t, st.Result)

	f.clock.Advance(time.Minute)
	assert.Empty(t, f.animator.getCalls())
}

func TestRunRoute_NewestRequestWins(t *testing.T) {
	firstStarted := make(chan struct{})
	var once sync.Once

	f := newFixture(t, func(ctx context.Context, from, _ string) (*models.PathResult, error) {
		if from == "Lagos" {
			once.Do(func() { close(firstStarted) })
			<-ctx.Done()
			return nil, &routesvc.TransportError{Err: ctx.Err()}
		}
		return &models.PathResult{Path: []string{"Oyo", "Abuja"}, Distance: 250, TotalStates: 2, IsDirect: true}, nil
	})

	errCh := make(chan error, 1)
	go func() {
		_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
		errCh <- err
	}()
	<-firstStarted

	res, err := f.orch.RunRoute(context.Background(), "Oyo", "Abuja", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oyo", "Abuja"}, res.Path)

	// The superseded request's context is cancelled and its outcome discarded.
	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	st := f.orch.Status()
	assert.Equal(t, StateSuccess, st.State)
	assert.Empty(t, st.Error)
	assert.Equal(t, "Direct", st.PathInfo.TypeText())
	assert.Equal(t, 2, f.stage.resetCount())

	f.clock.Advance(time.Second)
	calls := f.animator.getCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"Oyo", "Abuja"}, calls[0].path)
}

func TestRunRoute_SupersededAnimationSkipped(t *testing.T) {
	f := newFixture(t, succeed)

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
	require.NoError(t, err)
	f.clock.Advance(200 * time.Millisecond)

	_, err = f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 2*time.Second)
	require.NoError(t, err)
	f.clock.Advance(time.Second)

	calls := f.animator.getCalls()
	require.Len(t, calls, 1, "only the newest run animates")
	assert.Equal(t, 2*time.Second, calls[0].speed)
}

func TestRunRoute_RecordsHistory(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	hw := NewHistoryWorker(log, 10, 10)

	f := newFixture(t, succeed)
	f.orch.deps.History = hw

	_, err := f.orch.RunRoute(context.Background(), "Lagos", "Abuja", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hw.Run(ctx)

	got := hw.Recent(0)
	require.Len(t, got, 1)
	assert.Equal(t, "success", got[0].Outcome)
	assert.Equal(t, 400.0, got[0].Distance)
}
