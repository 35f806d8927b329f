package scrollview

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/inertia/internal/input/flick"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/state"
)

// StartEvent is delivered when a scroll interaction begins: on the first
// move of a drag, or when an animated ScrollTo starts.
type StartEvent struct {
	// Session is the drag session ID, or uuid.Nil for programmatic scrolls.
	Session uuid.UUID
	// Offset is the committed offset at the start.
	Offset scroll.Vector
	// Programmatic is true for ScrollTo.
	Programmatic bool
}

// ChangeEvent is delivered for every committed axis mutation.
type ChangeEvent struct {
	Session  uuid.UUID
	Axis     scroll.Axis
	Old      float64
	New      float64
	Source   state.Source
	Duration time.Duration
	Easing   string
}

// EndEvent is delivered when a scroll interaction completes.
type EndEvent struct {
	Session uuid.UUID

	// Offset is the committed offset at completion.
	Offset scroll.Vector

	// Stale is true when the drag lasted past the staleness threshold
	// and ended without momentum.
	Stale bool

	// Snapped is true when an out-of-bounds offset was returned to an
	// edge.
	Snapped bool

	// BoundaryExceeded is true when a momentum run overran an edge.
	BoundaryExceeded bool

	// Programmatic is true for the completion of an animated ScrollTo.
	Programmatic bool

	// Halfway is true when the release travelled more than half the
	// viewport on the primary axis. Forward gives the direction of that
	// travel.
	Halfway bool
	Forward bool
}

// FlickEvent is delivered when a release qualifies as a flick and momentum
// starts.
type FlickEvent struct {
	Session uuid.UUID
	Flick   flick.Flick
	// Velocity is the signed initial velocity in px/ms.
	Velocity float64
}

// Listener receives engine notifications. Callbacks run on the engine's
// thread and may call back into the engine.
type Listener interface {
	ScrollStart(e StartEvent)
	ScrollChange(e ChangeEvent)
	ScrollEnd(e EndEvent)
	Flick(e FlickEvent)
}

// ListenerFuncs adapts optional callbacks to Listener. Nil fields are
// skipped.
type ListenerFuncs struct {
	OnStart  func(StartEvent)
	OnChange func(ChangeEvent)
	OnEnd    func(EndEvent)
	OnFlick  func(FlickEvent)
}

// ScrollStart implements Listener.
func (f ListenerFuncs) ScrollStart(e StartEvent) {
	if f.OnStart != nil {
		f.OnStart(e)
	}
}

// ScrollChange implements Listener.
func (f ListenerFuncs) ScrollChange(e ChangeEvent) {
	if f.OnChange != nil {
		f.OnChange(e)
	}
}

// ScrollEnd implements Listener.
func (f ListenerFuncs) ScrollEnd(e EndEvent) {
	if f.OnEnd != nil {
		f.OnEnd(e)
	}
}

// Flick implements Listener.
func (f ListenerFuncs) Flick(e FlickEvent) {
	if f.OnFlick != nil {
		f.OnFlick(e)
	}
}

type subscriber struct {
	id uint64
	l  Listener
}
