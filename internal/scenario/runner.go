package scenario

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/dshills/inertia/internal/clock"
	"github.com/dshills/inertia/internal/config"
	"github.com/dshills/inertia/internal/input/flick"
	"github.com/dshills/inertia/internal/logging"
	"github.com/dshills/inertia/internal/renderer/transition"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
	"github.com/dshills/inertia/internal/scrollview"
)

// DefaultTimerLimit bounds the timers fired while waiting for a scenario
// to settle.
const DefaultTimerLimit = 100_000

// epoch is the manual clock start. Records are relative to it.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Result is the outcome of a scenario run.
type Result struct {
	Name    string
	Records []Record
	Final   scroll.Vector
	Status  scrollview.Status

	// Truncated is true when timers were still pending after the timer
	// limit was reached.
	Truncated bool
}

// Runner replays scenarios.
type Runner struct {
	log        *logging.Logger
	timerLimit int
	base       config.Scroll
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger handed to the scroll view.
func WithLogger(l *logging.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTimerLimit sets how many timers may fire while settling.
func WithTimerLimit(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.timerLimit = n
		}
	}
}

// WithBaseConfig sets the scroll configuration scenarios start from.
// Config keys in a YAML scenario, and configure calls in a Lua script,
// override it.
func WithBaseConfig(cfg config.Scroll) RunnerOption {
	return func(r *Runner) {
		r.base = cfg
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{log: logging.Null(), timerLimit: DefaultTimerLimit, base: config.DefaultScroll()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile loads and runs a YAML or Lua scenario.
func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == FormatLua {
		return r.RunLuaFile(ctx, path)
	}
	s, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, s)
}

// Run replays a YAML scenario.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cfg, err := s.ConfigOver(r.base)
	if err != nil {
		return nil, err
	}
	e := newEnv(cfg, r.log)
	e.resize(s.Viewport, s.Content)

	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.advanceTo(st.At)
		if err := e.apply(st); err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
	}

	if s.Until > 0 {
		e.advanceTo(s.Until)
	} else {
		e.settle(r.timerLimit)
	}
	res := e.result(s.Name)
	r.log.Debug("scenario %s replayed: steps=%d records=%d", s.Name, len(s.Steps), len(res.Records))
	return res, nil
}

// env is the replay environment shared by the YAML and Lua runners.
type env struct {
	clk      *clock.Manual
	view     *scrollview.ScrollView
	viewport bounds.Viewport
	content  bounds.Content
	records  []Record
}

func newEnv(cfg config.Scroll, log *logging.Logger) *env {
	e := &env{clk: clock.NewManual(epoch)}
	e.view = scrollview.New(e.clk, transition.SyncFunc(e.applyTransform),
		scrollview.WithConfig(cfg), scrollview.WithLogger(log))
	e.view.Subscribe(recorder{e})
	return e
}

// applyTransform completes animated transforms on the manual clock once
// their duration has passed.
func (e *env) applyTransform(t transition.Transform) {
	e.record(Record{
		Kind:     KindTransform,
		Offset:   t.Offset,
		Duration: durationMs(t.Duration),
		Easing:   t.Easing,
		Seq:      t.Seq,
	})
	if !t.Animated() {
		return
	}
	seq := t.Seq
	e.clk.AfterFunc(t.Duration, func() {
		e.view.TransitionEnded(seq)
	})
}

func (e *env) elapsed() float64 {
	return durationMs(e.clk.Now().Sub(epoch))
}

func (e *env) advanceTo(ms float64) {
	e.clk.AdvanceTo(epoch.Add(clock.FromMillis(ms)))
}

func (e *env) wait(ms float64) {
	if ms > 0 {
		e.clk.Advance(clock.FromMillis(ms))
	}
}

// settle fires timers until none remain. It reports false when limit was
// reached first.
func (e *env) settle(limit int) bool {
	e.clk.RunUntilIdle(limit)
	return e.clk.Pending() == 0
}

func (e *env) resize(viewport, content Size) {
	e.viewport = bounds.Viewport{Width: viewport.Width, Height: viewport.Height}
	e.content = bounds.Content{ScrollWidth: content.Width, ScrollHeight: content.Height}
	e.view.DimensionsChanged(e.viewport, e.content)
}

func (e *env) apply(st Step) error {
	p := scroll.Vector{X: st.X, Y: st.Y}
	switch st.Op {
	case OpDragStart:
		e.view.DragStart(p)
	case OpDragMove:
		e.view.DragMove(p)
	case OpDragEnd:
		e.view.DragEnd(p)
	case OpFlick:
		axis, err := parseAxis(st.Axis)
		if err != nil {
			return err
		}
		e.flick(st.Velocity, st.Direction, axis, st.Distance)
	case OpScrollTo:
		e.scrollTo(st.X, st.Y, st.Duration, st.Easing)
	case OpStop:
		e.view.Stop()
	case OpSync:
		e.view.Sync()
	case OpResize:
		e.resize(Size{Width: e.viewport.Width, Height: e.viewport.Height}, Size{Width: st.X, Height: st.Y})
	default:
		return errors.Wrapf(ErrUnknownStep, "%q", st.Op)
	}
	return nil
}

// flick delivers a flick signal. Any non-negative direction means +1.
func (e *env) flick(velocity, direction float64, axis scroll.Axis, distance float64) {
	e.view.Flick(flick.Flick{
		Velocity:  velocity,
		Direction: flick.DirectionOf(direction),
		Axis:      axis,
		Distance:  distance,
	})
}

func (e *env) scrollTo(x, y, durationMs float64, easing string) {
	var opts []scrollview.ScrollOption
	if durationMs > 0 {
		opts = append(opts, scrollview.WithDuration(clock.FromMillis(durationMs)))
	}
	if easing != "" {
		opts = append(opts, scrollview.WithEasing(easing))
	}
	e.view.ScrollTo(x, y, opts...)
}

func (e *env) record(r Record) {
	r.AtMs = e.elapsed()
	e.records = append(e.records, r)
}

func (e *env) result(name string) *Result {
	return &Result{
		Name:      name,
		Records:   e.records,
		Final:     e.view.Offset(),
		Status:    e.view.Status(),
		Truncated: e.clk.Pending() > 0,
	}
}

func parseAxis(s string) (scroll.Axis, error) {
	if s == "" {
		return scroll.AxisY, nil
	}
	a, ok := scroll.ParseAxis(s)
	if !ok {
		return a, errors.Wrapf(ErrInvalidScenario, "unknown axis %q", s)
	}
	return a, nil
}

func durationMs(d time.Duration) float64 {
	return clock.Millis(d)
}
