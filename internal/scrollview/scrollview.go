// Package scrollview implements inertial scrolling for a rectangular
// viewport.
//
// A ScrollView wires the gesture pipeline together: drag input opens a
// gesture session and moves the offset under the pointer, a release either
// snaps an overscrolled offset back to the edge, ends as a stale scroll, or
// waits for the input layer's flick signal, and a qualifying flick hands
// its velocity to the momentum animator. Every committed offset change is
// pushed to a transition.Sync and announced to listeners.
//
// A ScrollView is single threaded. All methods, and the callbacks of the
// clock it was created with, must run on the same goroutine.
package scrollview

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/inertia/internal/clock"
	"github.com/dshills/inertia/internal/config"
	"github.com/dshills/inertia/internal/input/flick"
	"github.com/dshills/inertia/internal/input/gesture"
	"github.com/dshills/inertia/internal/logging"
	"github.com/dshills/inertia/internal/renderer/transition"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
	"github.com/dshills/inertia/internal/scroll/momentum"
	"github.com/dshills/inertia/internal/scroll/state"
)

// releaseState tracks whether a flick signal may still act on the last
// release.
type releaseState uint8

const (
	// releaseNone: no release awaits a flick. A flick is evaluated on
	// its own distance.
	releaseNone releaseState = iota
	// releasePending: the last release awaits its flick signal.
	releasePending
	// releaseClosed: the last release snapped or was stale. Flicks are
	// ignored until the next gesture.
	releaseClosed
)

// completion is a ScrollEnd deferred until a transition finishes.
type completion struct {
	seq   uint64
	event EndEvent
}

// ScrollView is the inertial scrolling engine.
type ScrollView struct {
	clock clock.Clock
	sync  transition.Sync
	log   *logging.Logger
	cfg   config.Scroll

	bounds   *bounds.Tracker
	state    *state.State
	gesture  *gesture.Tracker
	detector *flick.Detector
	animator *momentum.Animator

	subscribers []subscriber
	nextSub     uint64

	phase   Phase
	session uuid.UUID
	seq     uint64
	pending *completion

	release      gesture.Release
	releaseEnd   EndEvent
	releaseState releaseState
}

// Option configures a ScrollView.
type Option func(*ScrollView)

// WithConfig sets the initial scroll configuration.
func WithConfig(cfg config.Scroll) Option {
	return func(v *ScrollView) {
		v.cfg = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(v *ScrollView) {
		if l != nil {
			v.log = l
		}
	}
}

// New creates an engine with no scrollable axis. Call DimensionsChanged
// before feeding input.
func New(clk clock.Clock, sync transition.Sync, opts ...Option) *ScrollView {
	v := &ScrollView{
		clock:   clk,
		sync:    sync,
		log:     logging.Null(),
		cfg:     config.DefaultScroll(),
		bounds:  bounds.NewTracker(),
		gesture: gesture.NewTracker(),
	}
	if v.sync == nil {
		v.sync = transition.Discard
	}
	for _, opt := range opts {
		opt(v)
	}

	v.log = v.log.WithComponent("scrollview")
	v.state = state.New(v.bounds)
	v.detector = flick.NewDetector(thresholds(v.cfg))
	v.animator = momentum.NewAnimator(clk, (*momentumTarget)(v), params(v.cfg))
	return v
}

// ScrollOption configures ScrollTo.
type ScrollOption func(*scrollOptions)

type scrollOptions struct {
	duration time.Duration
	easing   string
}

// WithDuration animates a ScrollTo over d.
func WithDuration(d time.Duration) ScrollOption {
	return func(o *scrollOptions) {
		o.duration = d
	}
}

// WithEasing names the easing of an animated ScrollTo. Without it the
// configured default easing is used.
func WithEasing(name string) ScrollOption {
	return func(o *scrollOptions) {
		o.easing = name
	}
}

// DimensionsChanged recomputes the bounds of both axes. The committed
// offset is left untouched.
func (v *ScrollView) DimensionsChanged(viewport bounds.Viewport, content bounds.Content) {
	b := v.bounds.Recompute(viewport, content)
	v.log.Debug("bounds x=[%g,%g] scrollable=%t y=[%g,%g] scrollable=%t",
		b[scroll.AxisX].Min, b[scroll.AxisX].Max, b[scroll.AxisX].Scrollable,
		b[scroll.AxisY].Min, b[scroll.AxisY].Max, b[scroll.AxisY].Scrollable)
}

// DragStart opens a gesture session at client point p. A running momentum
// animation is cancelled before the session opens, and a session that is
// still open is discarded without release evaluation.
func (v *ScrollView) DragStart(p scroll.Vector) {
	if v.animator.Stop() {
		v.log.Debug("momentum interrupted by drag")
	}
	v.pending = nil
	v.releaseState = releaseNone

	s, superseded := v.gesture.Begin(p, v.clock.Now(), v.state.Offset())
	if superseded != nil {
		v.log.WithField("session", superseded.ID).Warn("drag session superseded without release")
	}
	v.session = s.ID
	v.phase = PhaseDragging
	v.log.WithField("session", s.ID).Debug("drag start at (%g, %g)", p.X, p.Y)
}

// DragMove moves the offset so the content under the start point follows
// the pointer. Moves outside a session are ignored.
func (v *ScrollView) DragMove(p scroll.Vector) {
	target, ok := v.gesture.Move(p, v.clock.Now())
	if !ok {
		return
	}
	if v.gesture.FirstMove() {
		v.emitStart(StartEvent{Session: v.session, Offset: v.state.Offset()})
	}

	req := state.Request{
		Dragging:    true,
		Bounce:      v.cfg.Bounce,
		BounceRange: v.cfg.BounceRange,
		Source:      state.SourceProgrammatic,
	}
	muts := v.write(target, req)
	v.push(muts, 0, "")
	v.notifyChanges(muts, v.session)
}

// DragEnd closes the session. An overscrolled offset snaps back to the
// edge; otherwise a release that came after the staleness threshold ends
// the scroll. Any other release waits for a Flick call.
func (v *ScrollView) DragEnd(p scroll.Vector) {
	axis := v.bounds.Primary()
	rel, ok := v.gesture.End(p, v.clock.Now(), axis)
	if !ok {
		return
	}
	v.phase = PhaseIdle
	log := v.log.WithField("session", rel.ID)

	end := EndEvent{Session: rel.ID}
	if v.bounds.Scrollable(axis) && math.Abs(rel.Distance) > v.bounds.ViewportExtent(axis)/2 {
		end.Halfway = true
		end.Forward = rel.Distance > 0
	}

	if v.snapTo(v.state.Offset(), end) {
		log.Debug("release out of bounds, snapping")
		v.releaseState = releaseClosed
		return
	}

	if rel.Elapsed > v.cfg.StaleThreshold() {
		log.Debug("stale release after %s", rel.Elapsed)
		v.releaseState = releaseClosed
		end.Stale = true
		end.Offset = v.state.Offset()
		v.emitEnd(end)
		return
	}

	log.Debug("release distance=%g elapsed=%s", rel.Distance, rel.Elapsed)
	v.release = rel
	v.releaseEnd = end
	v.releaseState = releasePending
}

// DragCancel aborts the open session, for instance when the pointer is
// lost. There is no flick evaluation: an overscrolled offset snaps back to
// the edge, and a drag that had started scrolling ends where it is.
func (v *ScrollView) DragCancel() {
	s, ok := v.gesture.Cancel()
	if !ok {
		return
	}
	v.phase = PhaseIdle
	v.releaseState = releaseClosed
	log := v.log.WithField("session", s.ID)

	end := EndEvent{Session: s.ID}
	if v.snapTo(v.state.Offset(), end) {
		log.Debug("drag cancelled out of bounds, snapping")
		return
	}
	log.Debug("drag cancelled after %d moves", s.Moves)
	if s.Moves > 0 {
		end.Offset = v.state.Offset()
		v.emitEnd(end)
	}
}

// Flick delivers the input layer's release velocity signal. It is ignored
// during a drag and after a release that snapped or was stale. A flick
// that fails the distance/velocity gate ends the scroll; a qualifying
// flick starts momentum on every scrollable axis, governed by its own.
func (v *ScrollView) Flick(f flick.Flick) {
	log := v.log.WithField("session", v.session)
	if v.gesture.Active() {
		log.Debug("flick ignored during drag")
		return
	}
	if v.releaseState == releaseClosed {
		log.Debug("flick ignored after snapped or stale release")
		return
	}

	distance := f.Distance
	end := EndEvent{Session: v.session}
	if v.releaseState == releasePending {
		distance = v.release.Displacement().Get(f.Axis)
		end = v.releaseEnd
	}
	v.releaseState = releaseNone

	if !v.bounds.Scrollable(f.Axis) || !v.detector.Qualifies(distance, f.Velocity) {
		log.Debug("flick gated out: axis=%s distance=%g velocity=%g", f.Axis, distance, f.Velocity)
		end.Offset = v.state.Offset()
		v.emitEnd(end)
		return
	}

	v.animator.Stop()
	v.pending = nil
	velocity := f.Signed()
	log.Debug("flick axis=%s velocity=%g", f.Axis, velocity)

	v.phase = PhaseFlicking
	v.emitFlick(FlickEvent{Session: v.session, Flick: f, Velocity: velocity})
	v.animator.Start(momentum.NewFlickState(velocity, f.Axis, v.scrollableAxes()...))
}

// ScrollTo moves to (x, y), hard-clamped to the bounds. It cancels any
// running momentum. An animated ScrollTo announces ScrollStart and, once
// the transition ends, ScrollEnd with Programmatic set. NaN components
// leave that axis unchanged.
func (v *ScrollView) ScrollTo(x, y float64, opts ...ScrollOption) {
	var o scrollOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.duration > 0 && o.easing == "" {
		o.easing = v.cfg.Easing
	}

	if v.animator.Stop() {
		v.log.Debug("momentum interrupted by scrollTo")
	}
	v.pending = nil
	v.releaseState = releaseNone

	before := v.state.Offset()
	req := state.Request{Source: state.SourceUI, Duration: o.duration, Easing: o.easing}
	target := scroll.Vector{X: x, Y: y}
	var muts []state.Mutation
	for _, a := range scroll.Axes {
		if m, ok := v.state.Set(a, target.Get(a), req); ok {
			muts = append(muts, m)
		}
	}
	if len(muts) == 0 {
		v.phase = v.restingPhase()
		return
	}

	t := v.render(o.duration, o.easing)
	if t.Animated() {
		v.phase = PhaseAnimating
		v.pending = &completion{seq: t.Seq, event: EndEvent{Programmatic: true, Offset: v.state.Offset()}}
		v.emitStart(StartEvent{Offset: before, Programmatic: true})
	} else {
		v.phase = v.restingPhase()
	}
	v.notifyChanges(muts, uuid.Nil)
}

// Stop cancels running momentum without a completion notification. It
// reports whether momentum was running.
func (v *ScrollView) Stop() bool {
	if !v.animator.Stop() {
		return false
	}
	v.log.Debug("momentum stopped")
	v.phase = v.restingPhase()
	return true
}

// TransitionEnded is the render layer's completion signal for the
// transform with the given sequence number. Signals for superseded
// transforms are ignored.
func (v *ScrollView) TransitionEnded(seq uint64) {
	if v.pending == nil || v.pending.seq != seq {
		return
	}
	c := v.pending
	v.pending = nil
	v.phase = v.restingPhase()
	v.emitEnd(c.event)
}

// Sync re-applies the committed offset with no transition. A transition
// still awaiting completion is considered finished.
func (v *ScrollView) Sync() {
	v.render(0, "")
	if c := v.pending; c != nil {
		v.pending = nil
		v.phase = v.restingPhase()
		v.emitEnd(c.event)
	}
}

// SetConfig replaces the scroll configuration. Thresholds apply to the
// next release and physics to the next momentum frame.
func (v *ScrollView) SetConfig(cfg config.Scroll) {
	v.cfg = cfg
	v.detector.SetThresholds(thresholds(cfg))
	v.animator.SetParams(params(cfg))
	v.log.Debug("config updated: deceleration=%g bounce=%g", cfg.Deceleration, cfg.Bounce)
}

// Config returns the scroll configuration.
func (v *ScrollView) Config() config.Scroll {
	return v.cfg
}

// Subscribe registers l and returns a function that removes it.
func (v *ScrollView) Subscribe(l Listener) func() {
	v.nextSub++
	id := v.nextSub
	v.subscribers = append(v.subscribers, subscriber{id: id, l: l})
	return func() {
		for i, s := range v.subscribers {
			if s.id == id {
				v.subscribers = append(v.subscribers[:i:i], v.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Offset returns the committed offset.
func (v *ScrollView) Offset() scroll.Vector {
	return v.state.Offset()
}

// PrimaryAxis returns the axis release gestures are measured on: vertical
// when it scrolls, otherwise horizontal.
func (v *ScrollView) PrimaryAxis() scroll.Axis {
	return v.bounds.Primary()
}

// Bounds returns the bounds of both axes.
func (v *ScrollView) Bounds() [2]bounds.AxisBounds {
	return v.bounds.All()
}

// Status returns a snapshot of the engine state.
func (v *ScrollView) Status() Status {
	st := Status{
		Phase:              v.phase,
		Offset:             v.state.Offset(),
		Session:            v.session,
		Seq:                v.seq,
		AwaitingTransition: v.pending != nil,
		ReleasePending:     v.releaseState == releasePending,
	}
	if fs := v.animator.State(); fs.Active {
		st.Velocity = fs.Speed()
		st.Exceeded = fs.Exceeded
	}
	return st
}

func (v *ScrollView) scrollableAxes() []scroll.Axis {
	var axes []scroll.Axis
	for _, a := range scroll.Axes {
		if v.bounds.Scrollable(a) {
			axes = append(axes, a)
		}
	}
	return axes
}

// write sets every scrollable axis of target.
func (v *ScrollView) write(target scroll.Vector, req state.Request) []state.Mutation {
	var muts []state.Mutation
	for _, a := range scroll.Axes {
		if !v.bounds.Scrollable(a) {
			continue
		}
		if m, ok := v.state.Set(a, target.Get(a), req); ok {
			muts = append(muts, m)
		}
	}
	return muts
}

// push issues one transform for muts unless every mutation came from the
// render layer itself.
func (v *ScrollView) push(muts []state.Mutation, d time.Duration, easing string) (transition.Transform, bool) {
	for _, m := range muts {
		if m.NeedsRender() {
			return v.render(d, easing), true
		}
	}
	return transition.Transform{}, false
}

func (v *ScrollView) render(d time.Duration, easing string) transition.Transform {
	v.seq++
	t := transition.Transform{Seq: v.seq, Offset: v.state.Offset(), Duration: d, Easing: easing}
	v.sync.ApplyTransform(t)
	return t
}

// snapTo returns the out-of-bounds components of target to the nearest
// edge with the snap transition. It reports false, and does nothing, when
// target lies within the bounds of every scrollable axis.
func (v *ScrollView) snapTo(target scroll.Vector, end EndEvent) bool {
	req := state.Request{
		Source:   state.SourceProgrammatic,
		Duration: v.cfg.SnapDuration(),
		Easing:   v.cfg.SnapEasing,
	}

	snapped := false
	var muts []state.Mutation
	for _, a := range scroll.Axes {
		b := v.bounds.Axis(a)
		over := b.Overrun(target.Get(a))
		if !b.Scrollable || over == 0 {
			continue
		}
		v.log.Debug("snap %s back from %+g px past the edge", a, over)
		snapped = true
		if m, ok := v.state.Set(a, target.Get(a), req); ok {
			muts = append(muts, m)
		}
	}
	if !snapped {
		return false
	}

	end.Snapped = true
	v.finish(muts, req.Duration, req.Easing, end, PhaseSnapping)
	return true
}

// finish commits the final mutations of an interaction. When they start
// an animated transform, ScrollEnd waits for its TransitionEnded;
// otherwise it fires now.
func (v *ScrollView) finish(muts []state.Mutation, d time.Duration, easing string, end EndEvent, phase Phase) {
	t, rendered := v.push(muts, d, easing)
	end.Offset = v.state.Offset()

	if rendered && t.Animated() {
		v.phase = phase
		v.pending = &completion{seq: t.Seq, event: end}
		v.notifyChanges(muts, end.Session)
		return
	}

	v.phase = v.restingPhase()
	v.notifyChanges(muts, end.Session)
	v.emitEnd(end)
}

func (v *ScrollView) restingPhase() Phase {
	if v.gesture.Active() {
		return PhaseDragging
	}
	return PhaseIdle
}

func (v *ScrollView) notifyChanges(muts []state.Mutation, session uuid.UUID) {
	for _, m := range muts {
		e := ChangeEvent{
			Session:  session,
			Axis:     m.Axis,
			Old:      m.Old,
			New:      m.New,
			Source:   m.Source,
			Duration: m.Duration,
			Easing:   m.Easing,
		}
		for _, s := range v.subscribers {
			s.l.ScrollChange(e)
		}
	}
}

func (v *ScrollView) emitStart(e StartEvent) {
	for _, s := range v.subscribers {
		s.l.ScrollStart(e)
	}
}

func (v *ScrollView) emitEnd(e EndEvent) {
	for _, s := range v.subscribers {
		s.l.ScrollEnd(e)
	}
}

func (v *ScrollView) emitFlick(e FlickEvent) {
	for _, s := range v.subscribers {
		s.l.Flick(e)
	}
}

func thresholds(cfg config.Scroll) flick.Thresholds {
	return flick.Thresholds{MinDistance: cfg.FlickMinDistance, MinVelocity: cfg.FlickMinVelocity}
}

func params(cfg config.Scroll) momentum.Params {
	return momentum.Params{
		Deceleration:    cfg.Deceleration,
		Bounce:          cfg.Bounce,
		FrameStep:       cfg.FrameStep(),
		SettleThreshold: cfg.SettleThreshold,
	}
}
