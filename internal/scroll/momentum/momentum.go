// Package momentum simulates the inertial motion that follows a flick.
//
// The physics is a pure function, Step, which advances a FlickState by one
// frame. Animator drives Step from a clock with a single owned timer: it
// runs the first frame immediately, then one frame per FrameStep until the
// velocity settles or the run is stopped.
package momentum

import (
	"math"
	"time"

	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
)

// Default physics parameters.
const (
	DefaultDeceleration    = 0.98
	DefaultBounce          = 0.7
	DefaultFrameStep       = 10 * time.Millisecond
	DefaultSettleThreshold = 0.015
)

// Params are the physics parameters read by every frame.
type Params struct {
	// Deceleration multiplies the velocity each frame. Expected in (0, 1).
	Deceleration float64

	// Bounce multiplies the velocity on frames whose candidate lies
	// outside the bounds. Expected in [0, 1].
	Bounce float64

	// FrameStep is the simulated time between frames.
	FrameStep time.Duration

	// SettleThreshold is the speed in px/ms at or below which motion
	// stops.
	SettleThreshold float64
}

// DefaultParams returns the default physics parameters.
func DefaultParams() Params {
	return Params{
		Deceleration:    DefaultDeceleration,
		Bounce:          DefaultBounce,
		FrameStep:       DefaultFrameStep,
		SettleThreshold: DefaultSettleThreshold,
	}
}

// FlickState is the live state of one momentum run.
type FlickState struct {
	// Velocity holds the signed speed in px/ms of each axis. Positive
	// values move the offset toward Min.
	Velocity [2]float64

	// Moving marks the axes the run moves.
	Moving [2]bool

	// Axis is the governing axis. Its speed decides when the run
	// settles.
	Axis scroll.Axis

	// Active is true until the run settles or is stopped.
	Active bool

	// Exceeded records, per axis, whether a frame overran the bounds.
	Exceeded [2]bool

	// Frames counts the frames executed.
	Frames int
}

// NewFlickState creates an active state that moves the governing axis and
// every axis in also at velocity.
func NewFlickState(velocity float64, axis scroll.Axis, also ...scroll.Axis) FlickState {
	s := FlickState{Axis: axis, Active: true}
	for _, a := range append([]scroll.Axis{axis}, also...) {
		s.Velocity[a] = velocity
		s.Moving[a] = true
	}
	return s
}

// Speed returns the velocity of the governing axis.
func (s FlickState) Speed() float64 {
	return s.Velocity[s.Axis]
}

// BoundaryExceeded reports whether any axis overran during the run.
func (s FlickState) BoundaryExceeded() bool {
	return s.Exceeded[scroll.AxisX] || s.Exceeded[scroll.AxisY]
}

// Frame is the outcome of one Step.
type Frame struct {
	// Candidate is the proposed offset. Axes the run does not move keep
	// the input offset.
	Candidate scroll.Vector

	// Velocity is the governing axis velocity after decay (and bounce,
	// when applied).
	Velocity float64

	// Settled is true when this frame ends the run.
	Settled bool

	// Overrun is true when the candidate lies outside the bounds of any
	// moving axis.
	Overrun bool
}

// Settled reports whether a speed is at or below the threshold after
// rounding to four decimal places.
func Settled(velocity, threshold float64) bool {
	return math.Round(math.Abs(velocity)*1e4)/1e4 <= threshold
}

// Step advances s by one frame from offset within the given bounds.
//
// Each moving axis decays first and its candidate is computed from the
// decayed velocity. A frame whose governing speed has settled deactivates
// s and leaves every velocity unbounced; otherwise each overrunning axis is
// marked as exceeded and has the bounce coefficient applied to its own
// velocity.
func Step(s *FlickState, offset scroll.Vector, b [2]bounds.AxisBounds, p Params) Frame {
	s.Frames++
	stepMs := float64(p.FrameStep) / float64(time.Millisecond)

	candidate := offset
	var out [2]bool
	for _, a := range scroll.Axes {
		if !s.Moving[a] {
			continue
		}
		s.Velocity[a] *= p.Deceleration
		candidate.Set(a, offset.Get(a)-s.Velocity[a]*stepMs)
		out[a] = !b[a].Contains(candidate.Get(a))
	}
	overrun := out[scroll.AxisX] || out[scroll.AxisY]

	if Settled(s.Speed(), p.SettleThreshold) {
		s.Active = false
		return Frame{Candidate: candidate, Velocity: s.Speed(), Settled: true, Overrun: overrun}
	}

	for _, a := range scroll.Axes {
		if out[a] {
			s.Exceeded[a] = true
			s.Velocity[a] *= p.Bounce
		}
	}
	return Frame{Candidate: candidate, Velocity: s.Speed(), Overrun: overrun}
}
