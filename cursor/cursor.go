// Package cursor tracks pointer state and derives a smoothed pointer
// velocity from raw movement events.
package cursor

import (
	"math"

	"github.com/plus3/starfield/field"
)

// State is the pointer as seen by the simulation: where it is, where it
// was at the previous event, how fast it is moving and whether it is over
// the surface.
type State struct {
	Position field.Vec2
	Previous field.Vec2
	Velocity field.Vec2
	Over     bool

	// MaxSpeed caps the displacement of a single move event, Decay is the
	// per-frame velocity retention factor.
	MaxSpeed float64
	Decay    float64

	tracking bool
}

// New creates a pointer state that is not over the surface.
func New(maxSpeed, decay float64) *State {
	return &State{MaxSpeed: maxSpeed, Decay: decay}
}

// Enter marks the pointer as over the surface. The next move only
// establishes the position.
func (s *State) Enter() {
	s.Over = true
	s.tracking = false
}

// Leave marks the pointer as outside the surface and stops its motion.
func (s *State) Leave() {
	s.Over = false
	s.tracking = false
	s.Velocity = field.Vec2{}
}

// Move records a raw pointer position. The displacement since the previous
// event, clamped to MaxSpeed, becomes the pointer velocity.
func (s *State) Move(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}

	s.Previous = s.Position
	s.Position = field.Vec2{X: x, Y: y}
	s.Over = true

	if !s.tracking {
		s.Previous = s.Position
		s.tracking = true
		return
	}

	dx := s.Position.X - s.Previous.X
	dy := s.Position.Y - s.Previous.Y
	if mag := math.Hypot(dx, dy); mag > s.MaxSpeed && mag > 0 {
		scale := s.MaxSpeed / mag
		dx *= scale
		dy *= scale
	}
	s.Velocity = field.Vec2{X: dx, Y: dy}
}

// Step decays the velocity by Decay^dt, so the falloff over wall clock time
// does not depend on the frame rate.
func (s *State) Step(dt float64) {
	if dt <= 0 {
		return
	}
	k := math.Pow(s.Decay, dt)
	s.Velocity.X *= k
	s.Velocity.Y *= k
}

// Configure updates the smoothing parameters without touching position.
func (s *State) Configure(maxSpeed, decay float64) {
	s.MaxSpeed = maxSpeed
	s.Decay = decay
}

// Snapshot returns a copy of the state for read-only use during a step.
func (s *State) Snapshot() State {
	return *s
}
