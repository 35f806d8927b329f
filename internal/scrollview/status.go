package scrollview

import (
	"github.com/google/uuid"

	"github.com/dshills/inertia/internal/scroll"
)

// Phase describes what the engine is doing.
type Phase uint8

const (
	// PhaseIdle means no interaction is in progress.
	PhaseIdle Phase = iota
	// PhaseDragging means a drag session is open.
	PhaseDragging
	// PhaseFlicking means momentum frames are running.
	PhaseFlicking
	// PhaseSnapping means a snap-to-edge transition is playing.
	PhaseSnapping
	// PhaseAnimating means an animated ScrollTo is playing.
	PhaseAnimating
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseFlicking:
		return "flicking"
	case PhaseSnapping:
		return "snapping"
	case PhaseAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Status is a snapshot of the engine state.
type Status struct {
	Phase    Phase
	Offset   scroll.Vector
	Session  uuid.UUID
	Velocity float64

	// Exceeded reports per-axis boundary overruns of the current
	// momentum run.
	Exceeded [2]bool

	// Seq is the sequence number of the last transform issued.
	Seq uint64

	// AwaitingTransition is true while a ScrollEnd waits for
	// TransitionEnded.
	AwaitingTransition bool

	// ReleasePending is true while a release waits for its flick signal.
	ReleasePending bool
}
