// Package scroll holds the per-axis types shared by the scrolling pipeline.
//
// Every component in the pipeline treats the two axes independently: bounds,
// offsets, velocities and pointer positions are all expressed as a Vector and
// addressed by Axis.
package scroll

import "math"

// Axis identifies one of the two scrolling dimensions.
type Axis uint8

const (
	// AxisX is the horizontal axis.
	AxisX Axis = iota
	// AxisY is the vertical axis.
	AxisY
)

// Axes lists both axes in evaluation order.
var Axes = [2]Axis{AxisX, AxisY}

// String returns a string representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// ParseAxis parses "x"/"h"/"horizontal" or "y"/"v"/"vertical".
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "x", "X", "h", "horizontal":
		return AxisX, true
	case "y", "Y", "v", "vertical":
		return AxisY, true
	default:
		return AxisY, false
	}
}

// Vector is a pair of per-axis values. It is used for offsets, client
// points and velocities.
type Vector struct {
	X float64
	Y float64
}

// Get returns the component for the given axis.
func (v Vector) Get(a Axis) float64 {
	if a == AxisX {
		return v.X
	}
	return v.Y
}

// Set sets the component for the given axis.
func (v *Vector) Set(a Axis, value float64) {
	if a == AxisX {
		v.X = value
		return
	}
	v.Y = value
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Equal reports whether both components are equal.
func (v Vector) Equal(o Vector) bool {
	return v.X == o.X && v.Y == o.Y
}

// Dominant returns the axis with the larger absolute component.
// Ties resolve to AxisY.
func (v Vector) Dominant() Axis {
	if math.Abs(v.X) > math.Abs(v.Y) {
		return AxisX
	}
	return AxisY
}
