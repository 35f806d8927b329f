// Package flick classifies drag releases as flicks.
//
// A Flick is the velocity/direction signal the input layer attaches to a
// release. Hosts with a native gesture recognizer deliver it directly;
// hosts that only report pointer coordinates feed an Estimator with the
// drag samples and let it produce one. Either way a Detector decides
// whether the signal is strong enough to start inertial motion.
package flick

import (
	"math"
	"time"

	"github.com/dshills/inertia/internal/scroll"
)

// Flick is a release velocity signal along one axis.
type Flick struct {
	// Velocity is the release speed in px/ms. It is non-negative.
	Velocity float64

	// Direction is +1 when the pointer moved toward larger coordinates
	// and -1 otherwise.
	Direction float64

	// Axis is the axis the flick was measured on.
	Axis scroll.Axis

	// Distance is the pointer travel along Axis in px.
	Distance float64

	// Duration is the time span the velocity was measured over.
	Duration time.Duration
}

// Signed returns Velocity * Direction.
func (f Flick) Signed() float64 {
	return f.Velocity * f.Direction
}

// DirectionOf returns the direction sign for a pointer travel.
func DirectionOf(travel float64) float64 {
	if travel < 0 {
		return -1
	}
	return 1
}

// Thresholds gate a release before it can start momentum.
type Thresholds struct {
	// MinDistance is the minimum travel in px.
	MinDistance float64

	// MinVelocity is the minimum speed in px/ms.
	MinVelocity float64
}

// DefaultThresholds returns the default gate: 10 px, any velocity.
func DefaultThresholds() Thresholds {
	return Thresholds{MinDistance: 10, MinVelocity: 0}
}

// Detector applies Thresholds to flick candidates.
type Detector struct {
	thresholds Thresholds
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(th Thresholds) *Detector {
	return &Detector{thresholds: th}
}

// Thresholds returns the current gate.
func (d *Detector) Thresholds() Thresholds {
	return d.thresholds
}

// SetThresholds replaces the gate. It applies to the next evaluation.
func (d *Detector) SetThresholds(th Thresholds) {
	d.thresholds = th
}

// Qualifies reports whether a release with the given displacement (px) and
// measured speed (px/ms) is a flick. Both thresholds are inclusive and
// evaluated independently. NaN inputs never qualify.
func (d *Detector) Qualifies(distance, speed float64) bool {
	if math.IsNaN(distance) || math.IsNaN(speed) {
		return false
	}
	return math.Abs(distance) >= d.thresholds.MinDistance &&
		math.Abs(speed) >= d.thresholds.MinVelocity
}
