package field

import "math"

// Margin is how far outside the surface a point may travel before it wraps.
const Margin = 50.0

// Vec2 is a 2D vector in surface space.
type Vec2 struct {
	X, Y float64
}

// Len returns the vector magnitude.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Finite reports whether both components are neither NaN nor infinite.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// StretchState is the rotation state of a point drawn as a velocity aligned
// ellipse. TargetAngle is only maintained when Smoothed is set.
type StretchState struct {
	CurrentAngle float64
	TargetAngle  float64
	Smoothed     bool
}

// Point is a single simulated particle. Depth, Radius, Alpha and
// SpeedMultiplier are fixed at creation.
type Point struct {
	Position        Vec2
	Velocity        Vec2
	Depth           float64
	Radius          float64
	Alpha           float64
	SpeedMultiplier float64

	// Stretch is nil unless the field was built with stretching enabled.
	Stretch *StretchState
}
