// Package state owns the authoritative scroll offset.
//
// All offset writes go through State.Set, which applies the two-tier clamp
// policy: rubber-band overscroll is only allowed while the user is actively
// dragging and bounce is enabled; every other write is hard-clamped to the
// axis bounds.
package state

import (
	"math"
	"time"

	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
)

// Source tags where an offset write originated.
type Source uint8

const (
	// SourceProgrammatic marks writes made by the gesture and momentum
	// logic. The committed value still needs to be pushed to the renderer.
	SourceProgrammatic Source = iota

	// SourceUI marks writes whose visual transition has already been
	// issued by the caller. Committing them must not re-trigger a render.
	SourceUI
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceProgrammatic:
		return "programmatic"
	case SourceUI:
		return "ui"
	default:
		return "unknown"
	}
}

// Request describes a single offset write.
type Request struct {
	// Dragging is true only while a user drag is in contact.
	Dragging bool

	// Bounce is the bounce coefficient; zero disables overscroll.
	Bounce float64

	// BounceRange is the overscroll allowance in px while dragging.
	BounceRange float64

	// Source identifies the writer.
	Source Source

	// Duration and Easing describe the visual transition for the write.
	Duration time.Duration
	Easing   string
}

// Mutation records a committed offset change.
type Mutation struct {
	Axis     scroll.Axis
	Old      float64
	New      float64
	Source   Source
	Duration time.Duration
	Easing   string
}

// NeedsRender reports whether committing the mutation must push a
// transform to the renderer.
func (m Mutation) NeedsRender() bool {
	return m.Source != SourceUI
}

// State holds the current scroll offset of both axes.
type State struct {
	offset scroll.Vector
	bounds *bounds.Tracker
}

// New creates a state reading its limits from the given tracker.
func New(tracker *bounds.Tracker) *State {
	if tracker == nil {
		tracker = bounds.NewTracker()
	}
	return &State{bounds: tracker}
}

// Offset returns the committed offset.
func (s *State) Offset() scroll.Vector {
	return s.offset
}

// Get returns the committed offset of one axis.
func (s *State) Get(a scroll.Axis) float64 {
	return s.offset.Get(a)
}

// Set clamps raw according to the request and commits it. The boolean is
// false when the clamped value equals the current value or raw is NaN; no
// mutation is recorded in that case.
func (s *State) Set(a scroll.Axis, raw float64, req Request) (Mutation, bool) {
	if math.IsNaN(raw) {
		return Mutation{}, false
	}
	value := Clamp(raw, s.bounds.Axis(a), req)
	old := s.offset.Get(a)
	if value == old {
		return Mutation{}, false
	}

	s.offset.Set(a, value)
	return Mutation{
		Axis:     a,
		Old:      old,
		New:      value,
		Source:   req.Source,
		Duration: req.Duration,
		Easing:   req.Easing,
	}, true
}

// Clamp applies the two-tier clamp policy to a raw offset.
//
// With bounce disabled, or outside an active drag, the result lies in
// [Min, Max]. While dragging with bounce enabled it lies in
// [Min-BounceRange, Max+BounceRange].
func Clamp(raw float64, b bounds.AxisBounds, req Request) float64 {
	if req.Bounce == 0 || !req.Dragging {
		return b.Clamp(raw)
	}
	return b.Expand(req.BounceRange).Clamp(raw)
}
