package render_test

import (
	"math"
	"testing"
	"time"

	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/field"
	"github.com/plus3/starfield/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLerpAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, render.LerpAngle(0, math.Pi, 0.5), 1e-12)

	// The short way from 0.1 to 2π-0.1 crosses zero, not π.
	got := render.LerpAngle(0.1, 2*math.Pi-0.1, 0.5)
	assert.InDelta(t, 0, got, 1e-12)

	assert.InDelta(t, -3.0, render.LerpAngle(3, -3, 1)-2*math.Pi, 1e-12)
}

func TestSmoothingFactor(t *testing.T) {
	assert.Equal(t, 1.0, render.SmoothingFactor(16, 0))
	assert.Equal(t, 1.0, render.SmoothingFactor(16, -5))
	assert.InDelta(t, 0.1, render.SmoothingFactor(15, 150), 1e-12)
	assert.Equal(t, 1.0, render.SmoothingFactor(500, 150))
}

func TestStretchAmount(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSpeed = 2
	cfg.DotStretchMult = 4
	cfg.DotMaxStretch = 3

	assert.InDelta(t, 2.0, render.StretchAmount(1, &cfg), 1e-12)
	assert.InDelta(t, 3.0, render.StretchAmount(10, &cfg), 1e-12)
	assert.Zero(t, render.StretchAmount(0, &cfg))
}

func TestRenderEmptyFieldIssuesNothing(t *testing.T) {
	rec := &render.Recorder{}
	cfg := config.Default()
	stats := render.NewRenderer().Render(rec, nil, &cfg, 16*time.Millisecond)

	assert.Equal(t, render.Stats{}, stats)
	assert.Zero(t, rec.Total())
}

func TestRenderCircles(t *testing.T) {
	cfg := config.Default()
	cfg.DotColor = "rgba(10, 20, 30, 0.9)"

	points := []field.Point{
		{Position: field.Vec2{X: 1, Y: 2}, Radius: 3, Alpha: 0.25, Velocity: field.Vec2{X: 2}},
		{Position: field.Vec2{X: 4, Y: 5}, Radius: 1, Alpha: 1},
	}

	rec := &render.Recorder{}
	stats := render.NewRenderer().Render(rec, points, &cfg, 16*time.Millisecond)

	assert.Equal(t, render.Stats{Circles: 2}, stats)
	require.Len(t, rec.Calls, 2)
	assert.Equal(t, render.Call{Op: render.OpCircle, X: 1, Y: 2, RX: 3, RY: 3, Color: render.Color{R: 10, G: 20, B: 30, A: 0.25}}, rec.Calls[0])
	assert.Equal(t, "rgba(10, 20, 30, 1)", rec.Calls[1].Color.String())
}

func TestRenderStretchedEllipse(t *testing.T) {
	cfg := config.Default()
	cfg.DotStretch = true
	cfg.MaxSpeed = 2
	cfg.DotStretchMult = 2
	cfg.DotMaxStretch = 10

	points := []field.Point{{
		Position: field.Vec2{X: 10, Y: 10},
		Velocity: field.Vec2{X: 0, Y: 1},
		Radius:   2,
		Alpha:    0.5,
		Stretch:  &field.StretchState{},
	}}

	rec := &render.Recorder{}
	stats := render.NewRenderer().Render(rec, points, &cfg, 16*time.Millisecond)

	assert.Equal(t, render.Stats{Ellipses: 1}, stats)
	require.Len(t, rec.Calls, 1)
	call := rec.Calls[0]
	assert.Equal(t, render.OpEllipse, call.Op)
	assert.InDelta(t, 3.0, call.RX, 1e-12)
	assert.InDelta(t, 2.0, call.RY, 1e-12)
	assert.InDelta(t, math.Pi/2, call.Angle, 1e-12)
	assert.InDelta(t, math.Pi/2, points[0].Stretch.CurrentAngle, 1e-12)
}

func TestRenderSlowStretchedPointIsCircle(t *testing.T) {
	cfg := config.Default()
	cfg.DotStretch = true

	points := []field.Point{{Velocity: field.Vec2{X: 0.001}, Radius: 2, Alpha: 1, Stretch: &field.StretchState{CurrentAngle: 1}}}
	rec := &render.Recorder{}
	render.NewRenderer().Render(rec, points, &cfg, 16*time.Millisecond)

	assert.Equal(t, 1, rec.Count(render.OpCircle))
	assert.Equal(t, 1.0, points[0].Stretch.CurrentAngle)
}

func TestRenderRotationSmoothing(t *testing.T) {
	cfg := config.Default()
	cfg.DotStretch = true
	cfg.RotSmoothing = true
	cfg.RotSmoothingIntensity = 100
	cfg.MaxSpeed = 1

	points := []field.Point{{
		Velocity: field.Vec2{X: 0, Y: 1},
		Radius:   1,
		Alpha:    1,
		Stretch:  &field.StretchState{Smoothed: true},
	}}

	r := render.NewRenderer()
	rec := &render.Recorder{}
	r.Render(rec, points, &cfg, 50*time.Millisecond)

	st := points[0].Stretch
	assert.InDelta(t, math.Pi/2, st.TargetAngle, 1e-12)
	assert.InDelta(t, math.Pi/4, st.CurrentAngle, 1e-12)

	r.Render(rec, points, &cfg, 50*time.Millisecond)
	assert.InDelta(t, 3*math.Pi/8, st.CurrentAngle, 1e-12)

	cfg.RotSmoothingIntensity = 0
	r.Render(rec, points, &cfg, 50*time.Millisecond)
	assert.InDelta(t, math.Pi/2, st.CurrentAngle, 1e-12)
}

func TestBackground(t *testing.T) {
	r := render.NewRenderer()
	cfg := config.Default()
	cfg.BackgroundColor = "navy"

	rec := &render.Recorder{}
	r.Background(rec, &cfg)
	require.Len(t, rec.Calls, 2)
	assert.Equal(t, render.OpClear, rec.Calls[0].Op)
	assert.Equal(t, render.Color{R: 0, G: 0, B: 128, A: 1}, rec.Calls[1].Color)

	rec.Reset()
	cfg.BackgroundColor = "transparent"
	r.Background(rec, &cfg)
	assert.Equal(t, 1, rec.Total())
}

func TestDotColorCache(t *testing.T) {
	r := render.NewRenderer()
	cfg := config.Default()

	cfg.DotColor = "not-a-color"
	c, ok := r.DotColor(&cfg)
	assert.False(t, ok)
	assert.Equal(t, render.Fallback, c)

	cfg.DotColor = "#00ff00"
	c, ok = r.DotColor(&cfg)
	assert.True(t, ok)
	assert.Equal(t, render.Color{G: 255, A: 1}, c)

	cfg.DotColor = "rgb(nan, 0, 0)"
	c, ok = r.DotColor(&cfg)
	assert.False(t, ok)
	assert.Equal(t, render.Fallback, c)
}

func BenchmarkRender(b *testing.B) {
	cfg := config.Default()
	cfg.DotStretch = true
	cfg.RotSmoothing = true
	points := make([]field.Point, 5000)
	for i := range points {
		points[i] = field.Point{
			Position: field.Vec2{X: float64(i % 640), Y: float64(i % 480)},
			Velocity: field.Vec2{X: 1, Y: float64(i%5) - 2},
			Radius:   2,
			Alpha:    0.7,
			Stretch:  &field.StretchState{Smoothed: true},
		}
	}
	rec := &render.Recorder{Discard: true}
	r := render.NewRenderer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Render(rec, points, &cfg, 16*time.Millisecond)
	}
}
