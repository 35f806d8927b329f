package scrollview

import (
	"bytes"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inertia/internal/clock"
	"github.com/dshills/inertia/internal/config"
	"github.com/dshills/inertia/internal/input/flick"
	"github.com/dshills/inertia/internal/logging"
	"github.com/dshills/inertia/internal/renderer/transition"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
	"github.com/dshills/inertia/internal/scroll/state"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type recorder struct {
	kinds   []string
	starts  []StartEvent
	changes []ChangeEvent
	ends    []EndEvent
	flicks  []FlickEvent
}

func (r *recorder) ScrollStart(e StartEvent) {
	r.kinds = append(r.kinds, "start")
	r.starts = append(r.starts, e)
}

func (r *recorder) ScrollChange(e ChangeEvent) {
	r.kinds = append(r.kinds, "change")
	r.changes = append(r.changes, e)
}

func (r *recorder) ScrollEnd(e EndEvent) {
	r.kinds = append(r.kinds, "end")
	r.ends = append(r.ends, e)
}

func (r *recorder) Flick(e FlickEvent) {
	r.kinds = append(r.kinds, "flick")
	r.flicks = append(r.flicks, e)
}

type syncRecorder struct {
	transforms []transition.Transform
}

func (s *syncRecorder) ApplyTransform(t transition.Transform) {
	s.transforms = append(s.transforms, t)
}

func (s *syncRecorder) last() transition.Transform {
	return s.transforms[len(s.transforms)-1]
}

type harness struct {
	view *ScrollView
	clk  *clock.Manual
	sync *syncRecorder
	rec  *recorder
}

func newHarness(t *testing.T, contentHeight float64, opts ...Option) *harness {
	t.Helper()
	h := &harness{clk: clock.NewManual(epoch), sync: &syncRecorder{}, rec: &recorder{}}
	h.view = New(h.clk, h.sync, opts...)
	h.view.DimensionsChanged(bounds.Viewport{Width: 300, Height: 300}, bounds.Content{ScrollWidth: 300, ScrollHeight: contentHeight})
	h.view.Subscribe(h.rec)
	return h
}

func (h *harness) advance(ms int) {
	h.clk.Advance(time.Duration(ms) * time.Millisecond)
}

func pt(x, y float64) scroll.Vector {
	return scroll.Vector{X: x, Y: y}
}

func TestDragFollowsPointer(t *testing.T) {
	h := newHarness(t, 900)
	require.Equal(t, 600.0, h.view.Bounds()[scroll.AxisY].Max)

	h.view.DragStart(pt(0, 0))
	assert.Equal(t, PhaseDragging, h.view.Status().Phase)
	h.advance(10)
	h.view.DragMove(pt(0, -50))

	require.Len(t, h.rec.changes, 1)
	c := h.rec.changes[0]
	assert.Equal(t, scroll.AxisY, c.Axis)
	assert.Equal(t, 0.0, c.Old)
	assert.Equal(t, 50.0, c.New)
	assert.Equal(t, state.SourceProgrammatic, c.Source)
	assert.Equal(t, h.view.Status().Session, c.Session)
	assert.NotEqual(t, uuid.Nil, c.Session)

	require.Len(t, h.rec.starts, 1)
	assert.False(t, h.rec.starts[0].Programmatic)
	assert.Equal(t, []string{"start", "change"}, h.rec.kinds)

	require.Len(t, h.sync.transforms, 1)
	tr := h.sync.last()
	assert.Equal(t, pt(0, 50), tr.Offset)
	assert.Equal(t, time.Duration(0), tr.Duration)
	assert.Equal(t, uint64(1), tr.Seq)

	h.view.DragMove(pt(0, -50))
	assert.Len(t, h.rec.changes, 1, "unchanged offset is not re-committed")
	assert.Len(t, h.sync.transforms, 1)
	assert.Len(t, h.rec.starts, 1, "start fires once per session")
}

func TestDragRubberBand(t *testing.T) {
	h := newHarness(t, 900)
	h.view.DragStart(pt(0, 0))
	h.view.DragMove(pt(0, 400))
	assert.Equal(t, -150.0, h.view.Offset().Y, "overscroll limited to bounce range")

	h.view.DragMove(pt(0, -2000))
	assert.Equal(t, 750.0, h.view.Offset().Y)
}

func TestDragWithoutBounceHardClamps(t *testing.T) {
	cfg := config.DefaultScroll()
	cfg.Bounce = 0
	h := newHarness(t, 900, WithConfig(cfg))

	h.view.DragStart(pt(0, 0))
	h.view.DragMove(pt(0, 400))
	assert.Equal(t, 0.0, h.view.Offset().Y)
	assert.Empty(t, h.rec.changes)

	h.view.DragMove(pt(0, -2000))
	assert.Equal(t, 600.0, h.view.Offset().Y)
}

func TestNonScrollableAxisNeverMoves(t *testing.T) {
	h := newHarness(t, 900)
	h.view.DragStart(pt(100, 100))
	h.view.DragMove(pt(20, 40))
	h.view.DragEnd(pt(20, 40))
	h.view.Flick(flick.Flick{Velocity: 3, Direction: -1, Axis: scroll.AxisX, Distance: 80})

	assert.Equal(t, 0.0, h.view.Offset().X)
	for _, c := range h.rec.changes {
		assert.Equal(t, scroll.AxisY, c.Axis)
	}
	assert.Empty(t, h.rec.flicks, "flick on a fixed axis is gated out")
	require.Len(t, h.rec.ends, 1)
	assert.Equal(t, 0, h.clk.Pending())
}

func TestDragEndSnapsBack(t *testing.T) {
	h := newHarness(t, 900)
	h.view.DragStart(pt(0, 100))
	h.advance(10)
	h.view.DragMove(pt(0, 120))
	require.Equal(t, -20.0, h.view.Offset().Y)

	h.view.DragEnd(pt(0, 120))
	assert.Equal(t, 0.0, h.view.Offset().Y)
	assert.Equal(t, PhaseSnapping, h.view.Status().Phase)
	assert.True(t, h.view.Status().AwaitingTransition)

	snap := h.sync.last()
	assert.Equal(t, 400*time.Millisecond, snap.Duration)
	assert.Equal(t, "ease-out", snap.Easing)
	assert.Equal(t, pt(0, 0), snap.Offset)
	assert.Empty(t, h.rec.ends, "end waits for the transition")

	h.view.TransitionEnded(snap.Seq - 1)
	assert.Empty(t, h.rec.ends, "superseded transform ignored")

	h.view.TransitionEnded(snap.Seq)
	require.Len(t, h.rec.ends, 1)
	end := h.rec.ends[0]
	assert.True(t, end.Snapped)
	assert.False(t, end.Stale)
	assert.Equal(t, pt(0, 0), end.Offset)
	assert.Equal(t, PhaseIdle, h.view.Status().Phase)

	h.view.TransitionEnded(snap.Seq)
	assert.Len(t, h.rec.ends, 1)

	h.view.Flick(flick.Flick{Velocity: 2, Direction: 1, Axis: scroll.AxisY, Distance: 20})
	assert.Empty(t, h.rec.flicks, "flick after a snapped release is ignored")
	assert.Equal(t, 0, h.clk.Pending())
}

func TestStaleRelease(t *testing.T) {
	h := newHarness(t, 900)
	h.view.DragStart(pt(0, 500))
	h.advance(150)
	h.view.DragMove(pt(0, 495))
	h.view.DragEnd(pt(0, 495))

	require.Len(t, h.rec.ends, 1)
	end := h.rec.ends[0]
	assert.True(t, end.Stale)
	assert.False(t, end.Snapped)
	assert.Equal(t, pt(0, 5), end.Offset)
	assert.Equal(t, 0, h.clk.Pending(), "no animator starts")

	h.view.Flick(flick.Flick{Velocity: 1, Direction: -1, Axis: scroll.AxisY, Distance: 5})
	assert.Empty(t, h.rec.flicks)
	assert.Len(t, h.rec.ends, 1)
}

func TestStaleThresholdIsInclusiveOfLimit(t *testing.T) {
	h := newHarness(t, 900)
	h.view.DragStart(pt(0, 500))
	h.advance(100)
	h.view.DragMove(pt(0, 400))
	h.view.DragEnd(pt(0, 400))
	assert.Empty(t, h.rec.ends, "exactly 100 ms is not stale")
	assert.True(t, h.view.Status().ReleasePending)
}

func TestHalfwayFlags(t *testing.T) {
	h := newHarness(t, 900)
	h.view.DragStart(pt(0, 400))
	h.advance(200)
	h.view.DragMove(pt(0, 200))
	h.view.DragEnd(pt(0, 200))

	require.Len(t, h.rec.ends, 1)
	end := h.rec.ends[0]
	assert.True(t, end.Stale)
	assert.True(t, end.Halfway)
	assert.True(t, end.Forward)
}

func TestFlickStartsMomentum(t *testing.T) {
	h := newHarness(t, 5000)
	h.view.DragStart(pt(0, 500))
	h.advance(20)
	h.view.DragMove(pt(0, 400))
	h.advance(20)
	h.view.DragEnd(pt(0, 400))
	require.Empty(t, h.rec.ends)

	h.view.Flick(flick.Flick{Velocity: 2, Direction: -1, Axis: scroll.AxisY, Distance: 100})
	require.Len(t, h.rec.flicks, 1)
	assert.Equal(t, -2.0, h.rec.flicks[0].Velocity)
	assert.Equal(t, PhaseFlicking, h.view.Status().Phase)

	// First frame runs immediately: v = -1.96, offset 100 + 19.6.
	assert.InDelta(t, 119.6, h.view.Offset().Y, 1e-9)
	assert.InDelta(t, -1.96, h.view.Status().Velocity, 1e-12)
	assert.Equal(t, 1, h.clk.Pending())

	h.advance(10)
	assert.InDelta(t, 119.6+1.96*0.98*10, h.view.Offset().Y, 1e-9)

	h.clk.RunUntilIdle(10000)
	require.Len(t, h.rec.ends, 1)
	end := h.rec.ends[0]
	assert.False(t, end.BoundaryExceeded)
	assert.False(t, end.Snapped)
	assert.Equal(t, PhaseIdle, h.view.Status().Phase)
	assert.Equal(t, 0, h.clk.Pending(), "no ticks after settle")
	assert.InDelta(t, 100+972, h.view.Offset().Y, 10)

	for _, c := range h.rec.changes {
		assert.Equal(t, state.SourceProgrammatic, c.Source)
	}
	assert.Equal(t, "end", h.rec.kinds[len(h.rec.kinds)-1])
}

func TestFlickMovesEveryScrollableAxis(t *testing.T) {
	h := newHarness(t, 3000)
	h.view.DimensionsChanged(bounds.Viewport{Width: 300, Height: 300}, bounds.Content{ScrollWidth: 3000, ScrollHeight: 3000})
	h.view.ScrollTo(1000, 1000)

	h.view.Flick(flick.Flick{Velocity: 2, Direction: 1, Axis: scroll.AxisY, Distance: 100})
	require.Len(t, h.rec.flicks, 1)
	assert.InDelta(t, 980.4, h.view.Offset().X, 1e-9)
	assert.InDelta(t, 980.4, h.view.Offset().Y, 1e-9)

	h.clk.RunUntilIdle(10000)
	require.Len(t, h.rec.ends, 1)
	assert.Equal(t, h.view.Offset().X, h.view.Offset().Y)
	assert.Less(t, h.view.Offset().X, 100.0)
}

func TestDragCancel(t *testing.T) {
	t.Run("moved drag ends without flick", func(t *testing.T) {
		h := newHarness(t, 900)
		h.view.DragStart(pt(0, 300))
		h.advance(10)
		h.view.DragMove(pt(0, 200))
		h.view.DragCancel()

		assert.Equal(t, []string{"start", "change", "end"}, h.rec.kinds)
		end := h.rec.ends[0]
		assert.Equal(t, pt(0, 100), end.Offset)
		assert.False(t, end.Snapped)
		assert.Equal(t, PhaseIdle, h.view.Status().Phase)
		assert.False(t, h.view.Status().ReleasePending)

		h.view.Flick(flick.Flick{Velocity: 3, Direction: -1, Axis: scroll.AxisY, Distance: 100})
		assert.Empty(t, h.rec.flicks, "a cancelled session has no release to flick")
		assert.Equal(t, 0, h.clk.Pending())
	})

	t.Run("overscroll snaps back", func(t *testing.T) {
		h := newHarness(t, 900)
		h.view.DragStart(pt(0, 100))
		h.view.DragMove(pt(0, 160))
		require.Less(t, h.view.Offset().Y, 0.0)

		h.view.DragCancel()
		assert.Equal(t, 0.0, h.view.Offset().Y)
		assert.Equal(t, PhaseSnapping, h.view.Status().Phase)
		h.view.TransitionEnded(h.sync.last().Seq)
		require.Len(t, h.rec.ends, 1)
		assert.True(t, h.rec.ends[0].Snapped)
	})

	t.Run("unmoved drag is silent", func(t *testing.T) {
		h := newHarness(t, 900)
		h.view.DragStart(pt(0, 100))
		h.view.DragCancel()
		h.view.DragCancel()
		assert.Empty(t, h.rec.kinds)
		assert.Equal(t, PhaseIdle, h.view.Status().Phase)
	})
}

func TestFlickPositiveVelocityDecreasesOffset(t *testing.T) {
	h := newHarness(t, 900)
	h.view.ScrollTo(0, 300)

	h.view.Flick(flick.Flick{Velocity: 2, Direction: 1, Axis: scroll.AxisY, Distance: 40})
	require.Len(t, h.rec.flicks, 1)
	assert.InDelta(t, 300-19.6, h.view.Offset().Y, 1e-9)
	assert.InDelta(t, 1.96, h.view.Status().Velocity, 1e-12)
}

func TestFlickGatedOut(t *testing.T) {
	h := newHarness(t, 900)
	h.view.DragStart(pt(0, 300))
	h.advance(10)
	h.view.DragMove(pt(0, 295))
	h.advance(10)
	h.view.DragEnd(pt(0, 295))

	h.view.Flick(flick.Flick{Velocity: 5, Direction: -1, Axis: scroll.AxisY, Distance: 200})
	assert.Empty(t, h.rec.flicks, "release displacement of 5px is below the 10px gate")
	require.Len(t, h.rec.ends, 1)
	end := h.rec.ends[0]
	assert.False(t, end.Stale)
	assert.False(t, end.Snapped)
	assert.Equal(t, 0, h.clk.Pending())
	assert.False(t, h.view.Status().ReleasePending)
}

func TestFlickVelocityGate(t *testing.T) {
	cfg := config.DefaultScroll()
	cfg.FlickMinVelocity = 1
	h := newHarness(t, 900, WithConfig(cfg))

	h.view.Flick(flick.Flick{Velocity: 0.5, Direction: -1, Axis: scroll.AxisY, Distance: 50})
	assert.Empty(t, h.rec.flicks)

	h.view.Flick(flick.Flick{Velocity: 1, Direction: -1, Axis: scroll.AxisY, Distance: 50})
	assert.Len(t, h.rec.flicks, 1)
}

func TestFlickIgnoredDuringDrag(t *testing.T) {
	h := newHarness(t, 900)
	h.view.DragStart(pt(0, 300))
	h.view.DragMove(pt(0, 200))
	h.view.Flick(flick.Flick{Velocity: 2, Direction: -1, Axis: scroll.AxisY, Distance: 100})
	assert.Empty(t, h.rec.flicks)
	assert.Equal(t, 0, h.clk.Pending())
}

func TestNewGestureCancelsMomentum(t *testing.T) {
	h := newHarness(t, 5000)
	h.view.ScrollTo(0, 1000)
	h.view.Flick(flick.Flick{Velocity: 2, Direction: 1, Axis: scroll.AxisY, Distance: 50})
	h.advance(50)
	require.Equal(t, 1, h.clk.Pending())

	h.view.DragStart(pt(0, 10))
	assert.Equal(t, 0, h.clk.Pending(), "animator timer inactive before the first move")
	assert.Zero(t, h.view.Status().Velocity)
	at := h.view.Offset()

	h.advance(1000)
	assert.Equal(t, at, h.view.Offset())
	assert.Empty(t, h.rec.ends, "interruption is not a settle")

	h.view.DragMove(pt(0, 0))
	assert.Equal(t, at.Y+10, h.view.Offset().Y)
}

func TestMomentumBouncesAtEdge(t *testing.T) {
	h := newHarness(t, 900)
	h.view.ScrollTo(0, 50)
	h.view.Flick(flick.Flick{Velocity: 3, Direction: 1, Axis: scroll.AxisY, Distance: 50})

	h.clk.RunUntilIdle(10000)
	require.Len(t, h.rec.ends, 1)
	end := h.rec.ends[0]
	assert.True(t, end.BoundaryExceeded)
	assert.True(t, end.Snapped)
	assert.Equal(t, 0.0, end.Offset.Y)
	assert.Equal(t, PhaseIdle, h.view.Status().Phase)

	for _, c := range h.rec.changes {
		assert.GreaterOrEqual(t, c.New, 0.0, "momentum never overscrolls")
	}
}

func TestMomentumSettlesOnFirstFrame(t *testing.T) {
	cfg := config.DefaultScroll()
	cfg.Bounce = 0
	h := newHarness(t, 900, WithConfig(cfg))
	h.view.ScrollTo(0, 0.5)

	// One frame: v = 0.0147 settles immediately with candidate 0.353.
	h.view.Flick(flick.Flick{Velocity: 0.015, Direction: 1, Axis: scroll.AxisY, Distance: 50})
	require.Len(t, h.rec.ends, 1)
	assert.False(t, h.rec.ends[0].Snapped)
	assert.InDelta(t, 0.5-0.147, h.view.Offset().Y, 1e-9)
}

func TestStopCancelsWithoutEnd(t *testing.T) {
	h := newHarness(t, 5000)
	h.view.ScrollTo(0, 1000)
	h.view.Flick(flick.Flick{Velocity: 2, Direction: 1, Axis: scroll.AxisY, Distance: 50})

	assert.True(t, h.view.Stop())
	assert.False(t, h.view.Stop())
	assert.Equal(t, 0, h.clk.Pending())
	assert.Equal(t, PhaseIdle, h.view.Status().Phase)
	h.advance(1000)
	assert.Empty(t, h.rec.ends)
}

func TestScrollToJump(t *testing.T) {
	h := newHarness(t, 900)
	h.view.ScrollTo(40, 5000)

	assert.Equal(t, pt(0, 600), h.view.Offset(), "hard-clamped, never bounced")
	require.Len(t, h.rec.changes, 1)
	assert.Equal(t, state.SourceUI, h.rec.changes[0].Source)
	assert.Equal(t, uuid.Nil, h.rec.changes[0].Session)
	require.Len(t, h.sync.transforms, 1)
	assert.Equal(t, time.Duration(0), h.sync.last().Duration)
	assert.Empty(t, h.rec.starts)
	assert.Empty(t, h.rec.ends)

	h.view.ScrollTo(0, 600)
	assert.Len(t, h.sync.transforms, 1, "no-op scroll issues nothing")

	h.view.ScrollTo(math.NaN(), 100)
	assert.Equal(t, pt(0, 100), h.view.Offset())
}

func TestScrollToAnimated(t *testing.T) {
	h := newHarness(t, 900)
	h.view.ScrollTo(0, 200, WithDuration(300*time.Millisecond))

	tr := h.sync.last()
	assert.Equal(t, 300*time.Millisecond, tr.Duration)
	assert.Equal(t, transition.DefaultEasing, tr.Easing)
	assert.Equal(t, PhaseAnimating, h.view.Status().Phase)
	require.Len(t, h.rec.starts, 1)
	assert.True(t, h.rec.starts[0].Programmatic)
	assert.Equal(t, 300*time.Millisecond, h.rec.changes[0].Duration)

	h.view.TransitionEnded(tr.Seq)
	require.Len(t, h.rec.ends, 1)
	assert.True(t, h.rec.ends[0].Programmatic)
	assert.Equal(t, 200.0, h.rec.ends[0].Offset.Y)

	h.view.ScrollTo(0, 100, WithDuration(time.Second), WithEasing("linear"))
	assert.Equal(t, "linear", h.sync.last().Easing)
}

func TestScrollToStopsMomentum(t *testing.T) {
	h := newHarness(t, 5000)
	h.view.ScrollTo(0, 1000)
	h.view.Flick(flick.Flick{Velocity: 2, Direction: 1, Axis: scroll.AxisY, Distance: 50})
	h.view.ScrollTo(0, 10)
	assert.Equal(t, 0, h.clk.Pending())
	assert.Equal(t, 10.0, h.view.Offset().Y)
}

func TestNewGestureDiscardsPendingCompletion(t *testing.T) {
	h := newHarness(t, 900)
	h.view.ScrollTo(0, 200, WithDuration(300*time.Millisecond))
	seq := h.sync.last().Seq

	h.view.DragStart(pt(0, 0))
	h.view.TransitionEnded(seq)
	assert.Empty(t, h.rec.ends)
	assert.Equal(t, PhaseDragging, h.view.Status().Phase)
}

func TestSync(t *testing.T) {
	h := newHarness(t, 900)
	h.view.ScrollTo(0, 120)
	h.view.Sync()

	require.Len(t, h.sync.transforms, 2)
	assert.Equal(t, pt(0, 120), h.sync.last().Offset)
	assert.Equal(t, uint64(2), h.sync.last().Seq)

	h.view.ScrollTo(0, 200, WithDuration(time.Second))
	h.view.Sync()
	require.Len(t, h.rec.ends, 1, "sync completes a pending transition")
	assert.True(t, h.rec.ends[0].Programmatic)
}

func TestDimensionsChangedKeepsOffset(t *testing.T) {
	h := newHarness(t, 900)
	h.view.ScrollTo(0, 500)
	h.view.DimensionsChanged(bounds.Viewport{Width: 300, Height: 300}, bounds.Content{ScrollWidth: 300, ScrollHeight: 400})
	assert.Equal(t, 500.0, h.view.Offset().Y)
	assert.Equal(t, 100.0, h.view.Bounds()[scroll.AxisY].Max)

	h.view.DimensionsChanged(bounds.Viewport{}, bounds.Content{ScrollHeight: math.NaN()})
	assert.False(t, h.view.Bounds()[scroll.AxisY].Scrollable)
	h.view.DragStart(pt(0, 0))
	h.view.DragMove(pt(0, -100))
	assert.Equal(t, 500.0, h.view.Offset().Y, "axis without extents is not scrollable")
}

func TestSupersededSession(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	h := newHarness(t, 900, WithLogger(log))

	h.view.DragStart(pt(0, 0))
	first := h.view.Status().Session
	h.view.DragMove(pt(0, -30))
	h.view.DragStart(pt(0, 100))

	assert.NotEqual(t, first, h.view.Status().Session)
	assert.Empty(t, h.rec.ends, "superseded session has no release evaluation")
	assert.Contains(t, buf.String(), "superseded")
	assert.Contains(t, buf.String(), "component=scrollview")

	h.view.DragMove(pt(0, 90))
	assert.Equal(t, 40.0, h.view.Offset().Y, "new session starts from the committed offset")
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	h := newHarness(t, 900)
	var ends int
	unsubscribe := h.view.Subscribe(ListenerFuncs{OnEnd: func(EndEvent) { ends++ }})

	h.view.ScrollTo(0, 10, WithDuration(time.Millisecond))
	h.view.TransitionEnded(h.sync.last().Seq)
	assert.Equal(t, 1, ends)

	unsubscribe()
	unsubscribe()
	h.view.ScrollTo(0, 20, WithDuration(time.Millisecond))
	h.view.TransitionEnded(h.sync.last().Seq)
	assert.Equal(t, 1, ends)
	assert.Len(t, h.rec.ends, 2)
}

func TestSetConfigAppliesToNextRelease(t *testing.T) {
	h := newHarness(t, 900)
	cfg := h.view.Config()
	cfg.FlickMinDistance = 500
	h.view.SetConfig(cfg)
	assert.Equal(t, 500.0, h.view.Config().FlickMinDistance)

	h.view.Flick(flick.Flick{Velocity: 2, Direction: -1, Axis: scroll.AxisY, Distance: 100})
	assert.Empty(t, h.rec.flicks)
}

func TestNilSyncDiscards(t *testing.T) {
	v := New(clock.NewManual(epoch), nil)
	v.DimensionsChanged(bounds.Viewport{Width: 10, Height: 10}, bounds.Content{ScrollWidth: 100, ScrollHeight: 10})
	v.ScrollTo(50, 0)
	assert.Equal(t, pt(50, 0), v.Offset())
	assert.Equal(t, scroll.AxisX, v.bounds.Primary())
}

// Random input never breaks the clamp invariants or the single timer rule.
func TestRandomInputKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		h := newHarness(t, 900)
		r := rand.New(rand.NewSource(seed))
		b := h.view.Bounds()[scroll.AxisY]
		p := pt(0, 0)

		for step := 0; step < 300; step++ {
			switch r.Intn(8) {
			case 0:
				p = pt(0, r.Float64()*600)
				h.view.DragStart(p)
			case 1, 2:
				p = pt(0, p.Y+r.Float64()*400-200)
				h.view.DragMove(p)
			case 3:
				h.view.DragEnd(p)
			case 4:
				h.view.Flick(flick.Flick{Velocity: r.Float64() * 4, Direction: flick.DirectionOf(r.Float64() - 0.5),
					Axis: scroll.AxisY, Distance: r.Float64() * 100})
			case 5:
				h.view.ScrollTo(0, r.Float64()*1200-300, WithDuration(time.Duration(r.Intn(2))*100*time.Millisecond))
			case 6:
				if len(h.sync.transforms) > 0 {
					h.view.TransitionEnded(h.sync.last().Seq)
				}
			case 7:
				h.advance(r.Intn(200))
			}

			require.LessOrEqual(t, h.clk.Pending(), 1, "seed %d step %d", seed, step)
			y := h.view.Offset().Y
			if h.view.gesture.Active() {
				require.True(t, b.Expand(150).Contains(y), "seed %d step %d: drag offset %g", seed, step, y)
			} else {
				require.True(t, b.Contains(y), "seed %d step %d: offset %g", seed, step, y)
			}
			require.Equal(t, 0.0, h.view.Offset().X)
		}
	}
}
