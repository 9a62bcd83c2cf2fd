// Package sim advances a particle field by one frame: cursor coupling,
// random drift, friction, a speed cap, integration and edge wraparound.
//
// Every rate is scaled by dt, the elapsed time measured in 60 Hz frames,
// so the motion over wall clock time does not depend on the refresh rate.
package sim

import (
	"math"
	"time"

	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/cursor"
	"github.com/plus3/starfield/field"
)

// Frame is the elapsed time a dt of 1 stands for.
const Frame = time.Second / 60

// FrameDelta converts elapsed wall clock time into frame units.
func FrameDelta(elapsed time.Duration) float64 {
	return float64(elapsed) / float64(Frame)
}

// Input is the read-only snapshot a step works from.
type Input struct {
	Config config.Config
	Cursor cursor.State
	Size   field.Vec2
	DT     float64
}

// Simulator applies steps to point slices. A nil Jitter disables random
// drift regardless of the random factor.
type Simulator struct {
	Jitter Jitter
}

// Step advances every point by in.DT and returns how many points had a
// non-finite state that had to be reset.
func (s *Simulator) Step(points []field.Point, in Input) int {
	if len(points) == 0 || in.DT <= 0 {
		return 0
	}

	if s.Jitter != nil {
		s.Jitter.Advance(in.DT)
	}

	resets := 0
	for i := range points {
		if !s.StepPoint(&points[i], i, &in) {
			resets++
		}
	}
	return resets
}

// StepPoint advances a single point. It returns false when the point ended
// in a non-finite state and was repaired.
func (s *Simulator) StepPoint(p *field.Point, i int, in *Input) bool {
	cfg := &in.Config
	dt := in.DT
	ok := true

	if cfg.CursorEnabled() && in.Cursor.Over {
		applyInfluence(p, &in.Cursor, cfg, dt)
	}

	if s.Jitter != nil && cfg.RandomFactor > 0 {
		j := s.Jitter.Sample(i)
		p.Velocity.X += j.X * cfg.RandomFactor * dt
		p.Velocity.Y += j.Y * cfg.RandomFactor * dt
	}

	friction := math.Pow(cfg.Friction, dt)
	p.Velocity.X *= friction
	p.Velocity.Y *= friction

	if !p.Velocity.Finite() {
		p.Velocity = field.Vec2{}
		ok = false
	}

	if speed := p.Velocity.Len(); speed > cfg.MaxSpeed {
		scale := cfg.MaxSpeed / speed
		p.Velocity.X *= scale
		p.Velocity.Y *= scale
	}

	prev := p.Position
	p.Position.X += p.Velocity.X * p.SpeedMultiplier * dt
	p.Position.Y += p.Velocity.Y * p.SpeedMultiplier * dt

	if !p.Position.Finite() {
		if prev.Finite() {
			p.Position = prev
		} else {
			p.Position = field.Vec2{}
		}
		p.Velocity = field.Vec2{}
		ok = false
	}

	p.Position.X = wrap(p.Position.X, in.Size.X)
	p.Position.Y = wrap(p.Position.Y, in.Size.Y)
	return ok
}

// applyInfluence pushes a point along the pointer velocity. The push falls
// off linearly with distance and grows with depth.
func applyInfluence(p *field.Point, c *cursor.State, cfg *config.Config, dt float64) {
	dx := p.Position.X - c.Position.X
	dy := p.Position.Y - c.Position.Y
	distSq := dx*dx + dy*dy

	r := cfg.InfluenceRadius
	if distSq >= r*r {
		return
	}

	influence := (1 - math.Sqrt(distSq)/r) * p.Depth
	k := influence * cfg.InfluenceStrength * dt
	p.Velocity.X += c.Velocity.X * k
	p.Velocity.Y += c.Velocity.Y * k
}

// wrap teleports a coordinate that left the margin band to the opposite
// side of it.
func wrap(v, extent float64) float64 {
	switch {
	case v > extent+field.Margin:
		return -field.Margin
	case v < -field.Margin:
		return extent + field.Margin
	default:
		return v
	}
}
