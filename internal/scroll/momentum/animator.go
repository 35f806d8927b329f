package momentum

import (
	"github.com/dshills/inertia/internal/clock"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
)

// Target is the state an Animator moves.
type Target interface {
	// Offset returns the committed offset the next frame starts from.
	Offset() scroll.Vector

	// Bounds returns the current bounds of both axes.
	Bounds() [2]bounds.AxisBounds

	// MomentumFrame applies a non-terminal frame.
	MomentumFrame(s FlickState, f Frame)

	// MomentumSettled applies the terminal frame. No further frames
	// follow.
	MomentumSettled(s FlickState, f Frame)
}

// Animator runs momentum frames on a clock. At most one run is active and
// at most one frame timer is live; Start and Stop cancel the previous
// timer before doing anything else.
//
// Animator is not safe for concurrent use. It must be driven from the
// goroutine that delivers the clock's timer callbacks.
type Animator struct {
	clock  clock.Clock
	target Target
	params Params

	state FlickState
	timer clock.Timer
	gen   uint64
}

// NewAnimator creates an idle animator.
func NewAnimator(clk clock.Clock, target Target, params Params) *Animator {
	return &Animator{clock: clk, target: target, params: params.normalized()}
}

// Params returns the physics parameters.
func (a *Animator) Params() Params {
	return a.params
}

// SetParams replaces the physics parameters. A running animation picks
// them up on its next frame.
func (a *Animator) SetParams(p Params) {
	a.params = p.normalized()
}

// Active reports whether a run is in progress.
func (a *Animator) Active() bool {
	return a.state.Active
}

// State returns a copy of the current run state.
func (a *Animator) State() FlickState {
	return a.state
}

// TimerActive reports whether a frame timer is scheduled.
func (a *Animator) TimerActive() bool {
	return a.timer != nil && a.timer.Active()
}

// Start cancels any active run and starts a new one from s. The first
// frame runs before Start returns.
func (a *Animator) Start(s FlickState) {
	a.Stop()
	s.Active = true
	s.Frames = 0
	a.state = s
	a.frame(a.gen)
}

// Stop cancels the active run without settling it. It reports whether a
// run was active.
func (a *Animator) Stop() bool {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	was := a.state.Active
	a.state.Active = false
	return was
}

func (a *Animator) frame(gen uint64) {
	if gen != a.gen || !a.state.Active {
		return
	}
	a.timer = nil

	f := Step(&a.state, a.target.Offset(), a.target.Bounds(), a.params)
	if f.Settled {
		a.target.MomentumSettled(a.state, f)
		return
	}

	a.target.MomentumFrame(a.state, f)
	if gen != a.gen || !a.state.Active {
		return
	}
	a.timer = a.clock.AfterFunc(a.params.FrameStep, func() {
		a.frame(gen)
	})
}

func (p Params) normalized() Params {
	if p.FrameStep <= 0 {
		p.FrameStep = DefaultFrameStep
	}
	return p
}
