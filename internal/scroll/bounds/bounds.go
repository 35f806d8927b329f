// Package bounds derives the scrollable range of each axis from the
// viewport and content extents.
package bounds

import (
	"math"

	"github.com/dshills/inertia/internal/scroll"
)

// Viewport is the visible size of the scroll container.
type Viewport struct {
	Width  float64
	Height float64
}

// Content is the full size of the scrolled content.
type Content struct {
	ScrollWidth  float64
	ScrollHeight float64
}

// AxisBounds is the scrollable range of a single axis.
// A non-scrollable axis has Min == Max == 0.
type AxisBounds struct {
	Min        float64
	Max        float64
	Scrollable bool
}

// Contains reports whether v lies within [Min, Max].
func (b AxisBounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Clamp limits v to [Min, Max].
func (b AxisBounds) Clamp(v float64) float64 {
	return clamp(v, b.Min, b.Max)
}

// Expand returns bounds widened by r on both sides.
func (b AxisBounds) Expand(r float64) AxisBounds {
	return AxisBounds{Min: b.Min - r, Max: b.Max + r, Scrollable: b.Scrollable}
}

// Overrun returns how far v lies outside [Min, Max]. Negative values are
// below Min, positive values above Max, zero means in range.
func (b AxisBounds) Overrun(v float64) float64 {
	switch {
	case v < b.Min:
		return v - b.Min
	case v > b.Max:
		return v - b.Max
	default:
		return 0
	}
}

// Tracker stores the bounds of both axes.
// The zero value treats both axes as not scrollable.
type Tracker struct {
	axes     [2]AxisBounds
	viewport Viewport
	content  Content
}

// NewTracker creates a tracker with no scrollable axis.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Recompute derives the bounds of both axes and stores them.
// Missing (zero, negative or NaN) extents make the axis not scrollable.
func (t *Tracker) Recompute(viewport Viewport, content Content) [2]AxisBounds {
	t.viewport = viewport
	t.content = content
	t.axes[scroll.AxisX] = axisBounds(viewport.Width, content.ScrollWidth)
	t.axes[scroll.AxisY] = axisBounds(viewport.Height, content.ScrollHeight)
	return t.axes
}

// Axis returns the bounds for a single axis.
func (t *Tracker) Axis(a scroll.Axis) AxisBounds {
	return t.axes[a]
}

// All returns the bounds of both axes.
func (t *Tracker) All() [2]AxisBounds {
	return t.axes
}

// Scrollable reports whether the axis can scroll.
func (t *Tracker) Scrollable(a scroll.Axis) bool {
	return t.axes[a].Scrollable
}

// Primary returns the axis used for single-axis decisions: vertical when
// it scrolls, otherwise horizontal.
func (t *Tracker) Primary() scroll.Axis {
	if t.axes[scroll.AxisY].Scrollable || !t.axes[scroll.AxisX].Scrollable {
		return scroll.AxisY
	}
	return scroll.AxisX
}

// Viewport returns the last viewport extent passed to Recompute.
func (t *Tracker) Viewport() Viewport {
	return t.viewport
}

// Content returns the last content extent passed to Recompute.
func (t *Tracker) Content() Content {
	return t.content
}

// ViewportExtent returns the viewport size along an axis.
func (t *Tracker) ViewportExtent(a scroll.Axis) float64 {
	if a == scroll.AxisX {
		return t.viewport.Width
	}
	return t.viewport.Height
}

func axisBounds(viewport, content float64) AxisBounds {
	if !valid(viewport) || !valid(content) || content <= viewport {
		return AxisBounds{}
	}
	return AxisBounds{Min: 0, Max: content - viewport, Scrollable: true}
}

func valid(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
