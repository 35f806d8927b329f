package momentum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inertia/internal/clock"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func yBounds(hi float64) [2]bounds.AxisBounds {
	return [2]bounds.AxisBounds{
		scroll.AxisY: {Min: 0, Max: hi, Scrollable: true},
	}
}

type fakeTarget struct {
	offset  scroll.Vector
	bounds  [2]bounds.AxisBounds
	frames  []Frame
	settled []Frame
	final   FlickState
	onFrame func(f Frame)
}

func (t *fakeTarget) Offset() scroll.Vector        { return t.offset }
func (t *fakeTarget) Bounds() [2]bounds.AxisBounds { return t.bounds }

func (t *fakeTarget) MomentumSettled(s FlickState, f Frame) {
	t.settled = append(t.settled, f)
	t.final = s
}

func (t *fakeTarget) MomentumFrame(s FlickState, f Frame) {
	t.frames = append(t.frames, f)
	for _, a := range scroll.Axes {
		t.offset.Set(a, t.bounds[a].Clamp(f.Candidate.Get(a)))
	}
	if t.onFrame != nil {
		t.onFrame(f)
	}
}

func TestSettled(t *testing.T) {
	assert.True(t, Settled(0.015, 0.015))
	assert.True(t, Settled(-0.01504, 0.015), "rounded to four decimals")
	assert.False(t, Settled(0.0151, 0.015))
	assert.True(t, Settled(0, 0.015))
}

func TestStep_FirstFrame(t *testing.T) {
	s := NewFlickState(2.0, scroll.AxisY)
	f := Step(&s, scroll.Vector{Y: 300}, yBounds(600), DefaultParams())

	assert.InDelta(t, 1.96, f.Velocity, 1e-12)
	assert.InDelta(t, 300-19.6, f.Candidate.Y, 1e-9)
	assert.Equal(t, 0.0, f.Candidate.X)
	assert.False(t, f.Settled)
	assert.False(t, f.Overrun)
	assert.True(t, s.Active)
	assert.Equal(t, 1, s.Frames)
}

func TestStep_OverrunAppliesBounce(t *testing.T) {
	s := NewFlickState(2.0, scroll.AxisY)
	f := Step(&s, scroll.Vector{Y: 5}, yBounds(600), DefaultParams())

	require.True(t, f.Overrun)
	assert.InDelta(t, 1.96*0.7, s.Speed(), 1e-12)
	assert.True(t, s.Exceeded[scroll.AxisY])
	assert.False(t, s.Exceeded[scroll.AxisX])
	assert.True(t, s.BoundaryExceeded())
}

func TestStep_SettleSkipsBounce(t *testing.T) {
	s := NewFlickState(0.015, scroll.AxisY)
	f := Step(&s, scroll.Vector{Y: 0}, yBounds(600), DefaultParams())

	assert.True(t, f.Settled)
	assert.True(t, f.Overrun)
	assert.False(t, s.Active)
	assert.False(t, s.Exceeded[scroll.AxisY])
	assert.InDelta(t, 0.015*0.98, s.Speed(), 1e-12)
}

func TestStep_NegativeVelocityScrollsForward(t *testing.T) {
	s := NewFlickState(-1.0, scroll.AxisX)
	b := [2]bounds.AxisBounds{scroll.AxisX: {Max: 1000, Scrollable: true}}
	f := Step(&s, scroll.Vector{X: 100, Y: 7}, b, DefaultParams())

	assert.InDelta(t, 109.8, f.Candidate.X, 1e-9)
	assert.Equal(t, 7.0, f.Candidate.Y)
}

func bothBounds(hi float64) [2]bounds.AxisBounds {
	return [2]bounds.AxisBounds{
		scroll.AxisX: {Min: 0, Max: hi, Scrollable: true},
		scroll.AxisY: {Min: 0, Max: hi, Scrollable: true},
	}
}

func TestNewFlickState(t *testing.T) {
	s := NewFlickState(2, scroll.AxisY)
	assert.Equal(t, [2]bool{false, true}, s.Moving)
	assert.Equal(t, [2]float64{0, 2}, s.Velocity)
	assert.Equal(t, 2.0, s.Speed())

	s = NewFlickState(-1, scroll.AxisX, scroll.AxisY)
	assert.Equal(t, [2]bool{true, true}, s.Moving)
	assert.Equal(t, [2]float64{-1, -1}, s.Velocity)
	assert.Equal(t, scroll.AxisX, s.Axis)
}

func TestStep_MovesEveryAxis(t *testing.T) {
	s := NewFlickState(2.0, scroll.AxisY, scroll.AxisX)
	f := Step(&s, scroll.Vector{X: 1000, Y: 1000}, bothBounds(2700), DefaultParams())

	assert.InDelta(t, 1000-19.6, f.Candidate.X, 1e-9)
	assert.InDelta(t, 1000-19.6, f.Candidate.Y, 1e-9)
	assert.False(t, f.Overrun)
	assert.InDelta(t, 1.96, s.Velocity[scroll.AxisX], 1e-12)
}

func TestStep_BounceIsPerAxis(t *testing.T) {
	s := NewFlickState(2.0, scroll.AxisY, scroll.AxisX)
	f := Step(&s, scroll.Vector{X: 5, Y: 1000}, bothBounds(2700), DefaultParams())

	require.True(t, f.Overrun)
	assert.True(t, s.Exceeded[scroll.AxisX])
	assert.False(t, s.Exceeded[scroll.AxisY])
	assert.InDelta(t, 1.96*0.7, s.Velocity[scroll.AxisX], 1e-12)
	assert.InDelta(t, 1.96, s.Velocity[scroll.AxisY], 1e-12, "the governing axis keeps its speed")
	assert.InDelta(t, 1.96, f.Velocity, 1e-12)
}

func TestStep_GoverningAxisDecidesSettle(t *testing.T) {
	s := NewFlickState(0.015, scroll.AxisY, scroll.AxisX)
	s.Velocity[scroll.AxisX] = 3
	f := Step(&s, scroll.Vector{X: 500, Y: 500}, bothBounds(2700), DefaultParams())

	assert.True(t, f.Settled)
	assert.False(t, s.Active)
	assert.InDelta(t, 500-29.4, f.Candidate.X, 1e-9)
}

func TestAnimator_TwoAxisRun(t *testing.T) {
	clk := clock.NewManual(epoch)
	target := &fakeTarget{offset: scroll.Vector{X: 1000, Y: 1000}, bounds: bothBounds(2700)}
	a := NewAnimator(clk, target, DefaultParams())

	a.Start(NewFlickState(2.0, scroll.AxisY, scroll.AxisX))
	assert.InDelta(t, 980.4, target.offset.X, 1e-9)
	assert.InDelta(t, 980.4, target.offset.Y, 1e-9)

	clk.RunUntilIdle(10000)
	require.Len(t, target.settled, 1)
	assert.InDelta(t, target.offset.X, target.offset.Y, 1e-9, "equal speeds travel equally")
	assert.Less(t, target.offset.X, 1000.0-900)
}

func TestAnimator_RunsUntilSettled(t *testing.T) {
	clk := clock.NewManual(epoch)
	target := &fakeTarget{offset: scroll.Vector{Y: 3000}, bounds: yBounds(6000)}
	a := NewAnimator(clk, target, DefaultParams())

	a.Start(NewFlickState(2.0, scroll.AxisY))
	require.Len(t, target.frames, 1, "first frame runs immediately")
	assert.InDelta(t, 3000-19.6, target.offset.Y, 1e-9)
	assert.True(t, a.Active())
	assert.True(t, a.TimerActive())

	clk.Advance(10 * time.Millisecond)
	require.Len(t, target.frames, 2)
	assert.InDelta(t, 1.96*0.98, target.frames[1].Velocity, 1e-12)

	clk.RunUntilIdle(10000)
	require.Len(t, target.settled, 1)
	assert.False(t, a.Active())
	assert.False(t, a.TimerActive())
	assert.Equal(t, 0, clk.Pending(), "no frame scheduled after settle")
	assert.False(t, target.final.BoundaryExceeded())
	assert.LessOrEqual(t, target.final.Speed(), DefaultSettleThreshold+1e-9)

	// Sum of v_i*10 for v_i = 2*0.98^i, i = 1..n frames applied.
	assert.Greater(t, len(target.frames), 200)
	assert.Less(t, target.offset.Y, 3000.0-900)
}

func TestAnimator_BouncesAtEdge(t *testing.T) {
	clk := clock.NewManual(epoch)
	target := &fakeTarget{offset: scroll.Vector{Y: 50}, bounds: yBounds(600)}
	a := NewAnimator(clk, target, DefaultParams())

	a.Start(NewFlickState(3.0, scroll.AxisY))
	clk.RunUntilIdle(10000)

	require.Len(t, target.settled, 1)
	assert.True(t, target.final.BoundaryExceeded())
	assert.Equal(t, 0.0, target.offset.Y)
	assert.True(t, target.settled[0].Overrun, "terminal candidate still lies past the edge")
}

func TestAnimator_StopCancelsTimer(t *testing.T) {
	clk := clock.NewManual(epoch)
	target := &fakeTarget{offset: scroll.Vector{Y: 300}, bounds: yBounds(600)}
	a := NewAnimator(clk, target, DefaultParams())

	a.Start(NewFlickState(1.0, scroll.AxisY))
	require.True(t, a.TimerActive())

	assert.True(t, a.Stop())
	assert.False(t, a.Active())
	assert.False(t, a.TimerActive())
	assert.Equal(t, 0, clk.Pending())
	assert.False(t, a.Stop())

	clk.Advance(time.Second)
	assert.Len(t, target.frames, 1)
	assert.Empty(t, target.settled, "stop does not settle")
}

func TestAnimator_StopFromFrameCallback(t *testing.T) {
	clk := clock.NewManual(epoch)
	target := &fakeTarget{offset: scroll.Vector{Y: 300}, bounds: yBounds(600)}
	a := NewAnimator(clk, target, DefaultParams())
	target.onFrame = func(Frame) {
		if len(target.frames) == 3 {
			a.Stop()
		}
	}

	a.Start(NewFlickState(1.0, scroll.AxisY))
	clk.Advance(time.Second)
	assert.Len(t, target.frames, 3)
	assert.Equal(t, 0, clk.Pending())
}

func TestAnimator_RestartReplacesRun(t *testing.T) {
	clk := clock.NewManual(epoch)
	target := &fakeTarget{offset: scroll.Vector{Y: 300}, bounds: yBounds(600)}
	a := NewAnimator(clk, target, DefaultParams())

	a.Start(NewFlickState(1.0, scroll.AxisY))
	a.Start(NewFlickState(-1.0, scroll.AxisY))
	assert.Equal(t, 1, clk.Pending(), "only one frame timer is live")
	assert.Equal(t, 1, a.State().Frames)
	assert.Less(t, a.State().Speed(), 0.0)
}

func TestAnimator_ParamsApplyNextFrame(t *testing.T) {
	clk := clock.NewManual(epoch)
	target := &fakeTarget{offset: scroll.Vector{Y: 3000}, bounds: yBounds(6000)}
	a := NewAnimator(clk, target, DefaultParams())

	a.Start(NewFlickState(1.0, scroll.AxisY))
	p := a.Params()
	p.Deceleration = 0.5
	a.SetParams(p)

	clk.Advance(10 * time.Millisecond)
	require.Len(t, target.frames, 2)
	assert.InDelta(t, 0.98*0.5, target.frames[1].Velocity, 1e-12)
}

func TestAnimator_DecelerationOneNeverSettles(t *testing.T) {
	clk := clock.NewManual(epoch)
	target := &fakeTarget{offset: scroll.Vector{Y: 0}, bounds: yBounds(1e9)}
	a := NewAnimator(clk, target, Params{Deceleration: 1, Bounce: 1, FrameStep: 10 * time.Millisecond, SettleThreshold: 0.015})

	a.Start(NewFlickState(-0.5, scroll.AxisY))
	clk.Advance(time.Second)

	assert.True(t, a.Active())
	assert.Len(t, target.frames, 101)
	assert.Empty(t, target.settled)
	a.Stop()
	assert.Equal(t, 0, clk.Pending())
}

func TestAnimator_ZeroFrameStepUsesDefault(t *testing.T) {
	clk := clock.NewManual(epoch)
	a := NewAnimator(clk, &fakeTarget{bounds: yBounds(600)}, Params{Deceleration: 0.98})
	assert.Equal(t, DefaultFrameStep, a.Params().FrameStep)
}
