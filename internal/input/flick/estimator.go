package flick

import (
	"math"
	"time"

	"github.com/dshills/inertia/internal/scroll"
)

// DefaultWindow is how far back the estimator looks when measuring the
// release velocity.
const DefaultWindow = 100 * time.Millisecond

// maxSamples caps the sample history of a single drag.
const maxSamples = 64

// Sample is a timestamped pointer position.
type Sample struct {
	Point scroll.Vector
	Time  time.Time
}

// Estimator derives a Flick from raw drag samples.
//
// The velocity is measured over the samples inside Window before the
// release; the direction and distance come from the whole drag.
type Estimator struct {
	// Window bounds the samples used for velocity.
	Window time.Duration

	start   Sample
	samples []Sample
	active  bool
}

// NewEstimator creates an estimator with the given window. A zero window
// uses DefaultWindow.
func NewEstimator(window time.Duration) *Estimator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Estimator{Window: window, samples: make([]Sample, 0, maxSamples)}
}

// Begin starts a new drag at p.
func (e *Estimator) Begin(p scroll.Vector, now time.Time) {
	e.start = Sample{Point: p, Time: now}
	e.samples = append(e.samples[:0], e.start)
	e.active = true
}

// Add records a move sample.
func (e *Estimator) Add(p scroll.Vector, now time.Time) {
	if !e.active {
		return
	}
	if len(e.samples) == maxSamples {
		copy(e.samples, e.samples[1:])
		e.samples = e.samples[:maxSamples-1]
	}
	e.samples = append(e.samples, Sample{Point: p, Time: now})
}

// Active reports whether a drag is being sampled.
func (e *Estimator) Active() bool {
	return e.active
}

// Reset discards the current drag.
func (e *Estimator) Reset() {
	e.samples = e.samples[:0]
	e.active = false
}

// Release ends the drag at p and returns the flick measured along axis.
// It returns false when no drag is active or the window holds no usable
// time span.
func (e *Estimator) Release(p scroll.Vector, now time.Time, axis scroll.Axis) (Flick, bool) {
	if !e.active {
		return Flick{}, false
	}
	e.Add(p, now)
	defer e.Reset()

	cutoff := now.Add(-e.Window)
	first := len(e.samples) - 1
	for first > 0 && !e.samples[first-1].Time.Before(cutoff) {
		first--
	}
	// Include the last sample before the window so a slow final segment
	// still has a span to measure.
	if first > 0 && first == len(e.samples)-1 {
		first--
	}

	from := e.samples[first]
	span := now.Sub(from.Time)
	if span <= 0 {
		return Flick{}, false
	}

	windowTravel := p.Get(axis) - from.Point.Get(axis)
	travel := p.Get(axis) - e.start.Point.Get(axis)
	ms := float64(span) / float64(time.Millisecond)

	return Flick{
		Velocity:  math.Abs(windowTravel) / ms,
		Direction: DirectionOf(travel),
		Axis:      axis,
		Distance:  math.Abs(travel),
		Duration:  span,
	}, true
}
