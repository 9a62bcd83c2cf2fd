package field_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNewPoints(t *testing.T) {
	cfg := config.Default()
	cfg.DotMinSize, cfg.DotMaxSize = 1, 5
	cfg.DotMinOpacity, cfg.DotMaxOpacity = 0.1, 0.9

	points, err := field.NewPoints(newRand(), 500, 800, 600, cfg)
	require.NoError(t, err)
	require.Len(t, points, 500)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.Position.X, 0.0)
		assert.Less(t, p.Position.X, 800.0)
		assert.GreaterOrEqual(t, p.Position.Y, 0.0)
		assert.Less(t, p.Position.Y, 600.0)

		assert.GreaterOrEqual(t, p.Depth, 0.0)
		assert.Less(t, p.Depth, 1.0)

		assert.InDelta(t, 1+p.Depth*4, p.Radius, 1e-12)
		assert.InDelta(t, 0.1+p.Depth*0.8, p.Alpha, 1e-12)
		assert.InDelta(t, 0.3+p.Depth*0.7, p.SpeedMultiplier, 1e-12)

		assert.LessOrEqual(t, p.Velocity.X, 0.75)
		assert.GreaterOrEqual(t, p.Velocity.X, -0.75)
		assert.LessOrEqual(t, p.Velocity.Y, 0.75)
		assert.GreaterOrEqual(t, p.Velocity.Y, -0.75)

		assert.Nil(t, p.Stretch)
	}
}

func TestNewPointsStretchState(t *testing.T) {
	cfg := config.Default()
	cfg.DotStretch = true

	points, err := field.NewPoints(newRand(), 3, 100, 100, cfg)
	require.NoError(t, err)
	for _, p := range points {
		require.NotNil(t, p.Stretch)
		assert.Equal(t, field.StretchState{}, *p.Stretch)
	}

	cfg.RotSmoothing = true
	points, err = field.NewPoints(newRand(), 3, 100, 100, cfg)
	require.NoError(t, err)
	for _, p := range points {
		require.NotNil(t, p.Stretch)
		assert.True(t, p.Stretch.Smoothed)
		assert.Zero(t, p.Stretch.CurrentAngle)
		assert.Zero(t, p.Stretch.TargetAngle)
	}
}

func TestNewPointsRejectsBadInput(t *testing.T) {
	_, err := field.NewPoints(newRand(), -1, 100, 100, config.Default())
	assert.ErrorIs(t, err, field.ErrNegativeCount)

	_, err = field.NewPoints(newRand(), 1, -100, 100, config.Default())
	assert.ErrorIs(t, err, field.ErrSurfaceSize)

	points, err := field.NewPoints(newRand(), 0, 100, 100, config.Default())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestRescaleDoubles(t *testing.T) {
	points, err := field.NewPoints(newRand(), 100, 320, 240, config.Default())
	require.NoError(t, err)

	before := make([]field.Vec2, len(points))
	for i, p := range points {
		before[i] = p.Position
	}

	field.Rescale(points, field.Vec2{X: 320, Y: 240}, field.Vec2{X: 640, Y: 480})

	for i, p := range points {
		assert.InDelta(t, before[i].X*2, p.Position.X, 1e-9)
		assert.InDelta(t, before[i].Y*2, p.Position.Y, 1e-9)
	}
}

func TestRescaleClamps(t *testing.T) {
	points := []field.Point{
		{Position: field.Vec2{X: 140, Y: -40}},
		{Position: field.Vec2{X: -45, Y: 60}},
	}

	field.Rescale(points, field.Vec2{X: 100, Y: 100}, field.Vec2{X: 200, Y: 100})

	assert.Equal(t, field.Vec2{X: 250, Y: -40}, points[0].Position)
	assert.Equal(t, field.Vec2{X: -50, Y: 60}, points[1].Position)
}

func TestRescaleFromEmptySurface(t *testing.T) {
	points := []field.Point{{Position: field.Vec2{X: 10, Y: 400}}}
	field.Rescale(points, field.Vec2{}, field.Vec2{X: 300, Y: 300})
	assert.Equal(t, field.Vec2{X: 10, Y: 350}, points[0].Position)
}

func TestField(t *testing.T) {
	f := field.New(newRand())
	assert.Zero(t, f.Len())

	require.NoError(t, f.Initialize(25, 200, 100, config.Default()))
	assert.Equal(t, 25, f.Len())
	assert.Equal(t, field.Vec2{X: 200, Y: 100}, f.Size())

	first := f.Points()[0]
	require.NoError(t, f.Resize(400, 50))
	assert.InDelta(t, first.Position.X*2, f.Points()[0].Position.X, 1e-9)
	assert.InDelta(t, first.Position.Y/2, f.Points()[0].Position.Y, 1e-9)
	assert.Equal(t, first.Depth, f.Points()[0].Depth)

	assert.ErrorIs(t, f.Resize(-1, 10), field.ErrSurfaceSize)
	assert.ErrorIs(t, f.Initialize(-2, 10, 10, config.Default()), field.ErrNegativeCount)
	assert.Equal(t, 25, f.Len())

	f.Release()
	assert.Zero(t, f.Len())
}
