package render

import (
	"math"
	"time"

	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/field"
)

// minStretch is the stretch below which a point is drawn as a circle.
const minStretch = 0.01

// Stats counts the shapes issued by one Render call.
type Stats struct {
	Circles  int
	Ellipses int
}

// Renderer draws points. It caches the parsed dot colour between frames.
type Renderer struct {
	colorSource string
	color       Color
	colorOK     bool
	parsed      bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// DotColor returns the parsed dot colour and whether the configured string
// was understood. Unparseable colours resolve to Fallback.
func (r *Renderer) DotColor(cfg *config.Config) (Color, bool) {
	if !r.parsed || cfg.DotColor != r.colorSource {
		c, err := ParseColor(cfg.DotColor)
		r.colorOK = err == nil
		if err != nil {
			c = Fallback
		}
		r.colorSource = cfg.DotColor
		r.color = c
		r.parsed = true
	}
	return r.color, r.colorOK
}

// Background fills the surface with the configured background colour. A
// transparent or unparseable background only clears.
func (r *Renderer) Background(s Surface, cfg *config.Config) {
	s.Clear()
	bg, err := ParseColor(cfg.BackgroundColor)
	if err != nil || bg.Transparent() {
		return
	}
	s.FillBackground(bg)
}

// Render draws every point. Stretched points turn towards their heading,
// smoothed over elapsed when rotation smoothing is on.
func (r *Renderer) Render(s Surface, points []field.Point, cfg *config.Config, elapsed time.Duration) Stats {
	var stats Stats
	if len(points) == 0 {
		return stats
	}

	base, _ := r.DotColor(cfg)
	dtMillis := float64(elapsed) / float64(time.Millisecond)

	for i := range points {
		p := &points[i]
		c := base.WithAlpha(p.Alpha)

		stretch := 0.0
		if cfg.DotStretch && p.Stretch != nil {
			stretch = StretchAmount(p.Velocity.Len(), cfg)
		}
		if stretch < minStretch {
			s.FillCircle(p.Position.X, p.Position.Y, p.Radius, c)
			stats.Circles++
			continue
		}

		facing := math.Atan2(p.Velocity.Y, p.Velocity.X)
		st := p.Stretch
		if cfg.RotSmoothing && st.Smoothed {
			st.TargetAngle = facing
			st.CurrentAngle = LerpAngle(st.CurrentAngle, st.TargetAngle, SmoothingFactor(dtMillis, cfg.RotSmoothingIntensity))
		} else {
			st.CurrentAngle = facing
		}

		s.FillEllipse(p.Position.X, p.Position.Y, p.Radius+stretch, p.Radius, st.CurrentAngle, c)
		stats.Ellipses++
	}
	return stats
}

// StretchAmount maps a speed onto the extra length of the leading
// semi-axis.
func StretchAmount(speed float64, cfg *config.Config) float64 {
	if cfg.MaxSpeed <= 0 {
		return 0
	}
	normalized := math.Min(speed/cfg.MaxSpeed, 1)
	return math.Min(normalized*cfg.DotStretchMult, cfg.DotMaxStretch)
}

// SmoothingFactor is the share of the remaining turn covered in dtMillis.
// A non-positive intensity turns instantly.
func SmoothingFactor(dtMillis, intensityMillis float64) float64 {
	if intensityMillis <= 0 {
		return 1
	}
	return math.Max(0, math.Min(dtMillis/intensityMillis, 1))
}

// LerpAngle interpolates from one angle towards another along the shorter
// arc.
func LerpAngle(from, to, t float64) float64 {
	diff := math.Remainder(to-from, 2*math.Pi)
	return from + diff*t
}
