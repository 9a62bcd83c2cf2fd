package cursor_test

import (
	"math"
	"testing"

	"github.com/plus3/starfield/cursor"
	"github.com/plus3/starfield/field"
	"github.com/stretchr/testify/assert"
)

func TestFirstMoveHasNoVelocity(t *testing.T) {
	s := cursor.New(20, 0.9)
	s.Enter()
	s.Move(100, 100)

	assert.True(t, s.Over)
	assert.Equal(t, field.Vec2{}, s.Velocity)
	assert.Equal(t, field.Vec2{X: 100, Y: 100}, s.Position)
	assert.Equal(t, s.Position, s.Previous)
}

func TestMoveDerivesVelocity(t *testing.T) {
	s := cursor.New(20, 0.9)
	s.Move(10, 10)
	s.Move(13, 14)

	assert.Equal(t, field.Vec2{X: 3, Y: 4}, s.Velocity)
	assert.Equal(t, field.Vec2{X: 10, Y: 10}, s.Previous)
}

func TestMoveClampsDisplacement(t *testing.T) {
	s := cursor.New(5, 0.9)
	s.Move(0, 0)
	s.Move(30, 40)

	assert.InDelta(t, 5, math.Hypot(s.Velocity.X, s.Velocity.Y), 1e-9)
	assert.InDelta(t, 3, s.Velocity.X, 1e-9)
	assert.InDelta(t, 4, s.Velocity.Y, 1e-9)
}

func TestMoveIgnoresNonFinite(t *testing.T) {
	s := cursor.New(5, 0.9)
	s.Move(1, 1)
	s.Move(math.NaN(), 2)
	assert.Equal(t, field.Vec2{X: 1, Y: 1}, s.Position)
}

func TestLeaveStops(t *testing.T) {
	s := cursor.New(50, 0.9)
	s.Move(0, 0)
	s.Move(10, 0)
	s.Leave()

	assert.False(t, s.Over)
	assert.Equal(t, field.Vec2{}, s.Velocity)

	s.Enter()
	s.Move(500, 500)
	assert.Equal(t, field.Vec2{}, s.Velocity)
}

func TestDecayIsFrameRateIndependent(t *testing.T) {
	a := cursor.New(50, 0.8)
	a.Move(0, 0)
	a.Move(10, -6)
	b := a.Snapshot()

	a.Step(2)
	b.Step(1)
	b.Step(1)

	assert.InDelta(t, a.Velocity.X, b.Velocity.X, 1e-12)
	assert.InDelta(t, a.Velocity.Y, b.Velocity.Y, 1e-12)
	assert.InDelta(t, 10*0.64, a.Velocity.X, 1e-12)
}
