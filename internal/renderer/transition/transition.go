// Package transition defines the contract between the scrolling engine and
// whatever renders its offset.
//
// The engine describes each visual change as a Transform: a target offset,
// a duration and an easing name. A Sync applies it, and for any transform
// with a non-zero duration reports completion back to the engine with the
// transform's sequence number. Completion is always asynchronous; a Sync
// must never call back into the engine from inside ApplyTransform.
package transition

import (
	"time"

	"github.com/dshills/inertia/internal/scroll"
)

// Transform is a single render request.
type Transform struct {
	// Seq identifies the transform. Later transforms have larger values.
	Seq uint64

	// Offset is the target scroll offset.
	Offset scroll.Vector

	// Duration is the length of the visual transition. Zero means jump.
	Duration time.Duration

	// Easing names the timing function. Empty means linear.
	Easing string
}

// Animated reports whether the transform needs a completion signal.
func (t Transform) Animated() bool {
	return t.Duration > 0
}

// Sync applies transforms. It is implemented by the render layer.
type Sync interface {
	ApplyTransform(t Transform)
}

// SyncFunc adapts a function to the Sync interface.
type SyncFunc func(t Transform)

// ApplyTransform calls f(t).
func (f SyncFunc) ApplyTransform(t Transform) {
	f(t)
}

// Discard is a Sync that ignores every transform.
var Discard Sync = SyncFunc(func(Transform) {})
