// Package field holds the particle set of a starfield and its bulk
// lifecycle operations. Points are only ever created or replaced as a whole.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/plus3/starfield/config"
)

var (
	ErrNegativeCount = errors.New("point count must not be negative")
	ErrSurfaceSize   = errors.New("surface size must be finite and non-negative")
)

const initialSpeed = 0.75

// NewPoints creates count points spread uniformly over a width x height
// surface. Depth derived attributes are interpolated from the configured
// size and opacity ranges.
func NewPoints(rng *rand.Rand, count int, width, height float64, cfg config.Config) ([]Point, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	points := make([]Point, count)
	for i := range points {
		depth := rng.Float64()
		p := Point{
			Position: Vec2{X: rng.Float64() * width, Y: rng.Float64() * height},
			Velocity: Vec2{
				X: (rng.Float64()*2 - 1) * initialSpeed,
				Y: (rng.Float64()*2 - 1) * initialSpeed,
			},
			Depth:           depth,
			Radius:          cfg.DotMinSize + depth*(cfg.DotMaxSize-cfg.DotMinSize),
			Alpha:           cfg.DotMinOpacity + depth*(cfg.DotMaxOpacity-cfg.DotMinOpacity),
			SpeedMultiplier: 0.3 + depth*0.7,
		}
		if cfg.DotStretch {
			p.Stretch = &StretchState{Smoothed: cfg.RotSmoothing}
		}
		points[i] = p
	}
	return points, nil
}

// Rescale redistributes points proportionally after the surface changed
// from old to size, then clamps coordinates into the margin band. An axis
// whose old extent was zero is only clamped.
func Rescale(points []Point, old, size Vec2) {
	sx, sy := 1.0, 1.0
	if old.X > 0 {
		sx = size.X / old.X
	}
	if old.Y > 0 {
		sy = size.Y / old.Y
	}

	for i := range points {
		p := &points[i].Position
		p.X = clamp(p.X*sx, -Margin, size.X+Margin)
		p.Y = clamp(p.Y*sy, -Margin, size.Y+Margin)
	}
}

// Field owns the current point set and the surface extent it lives on.
type Field struct {
	rng    *rand.Rand
	points []Point
	size   Vec2
}

// New creates an empty field drawing randomness from rng.
func New(rng *rand.Rand) *Field {
	return &Field{rng: rng}
}

// Initialize replaces every point with count fresh ones.
func (f *Field) Initialize(count int, width, height float64, cfg config.Config) error {
	points, err := NewPoints(f.rng, count, width, height, cfg)
	if err != nil {
		return fmt.Errorf("initialize field: %w", err)
	}
	f.points = points
	f.size = Vec2{X: width, Y: height}
	return nil
}

// Resize rescales the existing points onto a new surface extent.
func (f *Field) Resize(width, height float64) error {
	if err := checkSize(width, height); err != nil {
		return fmt.Errorf("resize field: %w", err)
	}
	size := Vec2{X: width, Y: height}
	Rescale(f.points, f.size, size)
	f.size = size
	return nil
}

// Points exposes the point slice for in-place simulation.
func (f *Field) Points() []Point {
	return f.points
}

func (f *Field) Len() int {
	return len(f.points)
}

func (f *Field) Size() Vec2 {
	return f.size
}

// Release drops every point.
func (f *Field) Release() {
	f.points = nil
}

func checkSize(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) || width < 0 || height < 0 {
		return fmt.Errorf("%w: %vx%v", ErrSurfaceSize, width, height)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
