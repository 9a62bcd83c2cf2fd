package sim

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/field"
)

// Jitter produces the random velocity perturbation of each point. Samples
// lie in [-0.5, 0.5] on each axis and are scaled by the random factor.
type Jitter interface {
	// Advance moves the source forward by dt frames before a step.
	Advance(dt float64)
	Sample(i int) field.Vec2
}

// UniformJitter draws independent uniform samples.
type UniformJitter struct {
	rng *rand.Rand
}

func NewUniformJitter(rng *rand.Rand) *UniformJitter {
	return &UniformJitter{rng: rng}
}

func (j *UniformJitter) Advance(float64) {}

func (j *UniformJitter) Sample(int) field.Vec2 {
	return field.Vec2{X: j.rng.Float64() - 0.5, Y: j.rng.Float64() - 0.5}
}

const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
	// perlinDrift is how far through the noise field one frame travels.
	perlinDrift = 0.015
)

// PerlinJitter samples a coherent noise field, so each point wanders
// smoothly instead of shaking.
type PerlinJitter struct {
	noise *perlin.Perlin
	t     float64
}

func NewPerlinJitter(seed int64) *PerlinJitter {
	return &PerlinJitter{noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

func (j *PerlinJitter) Advance(dt float64) {
	j.t += dt * perlinDrift
}

func (j *PerlinJitter) Sample(i int) field.Vec2 {
	offset := float64(i) * 7.31
	return field.Vec2{
		X: unitHalf(j.noise.Noise2D(j.t+offset, 0.5)),
		Y: unitHalf(j.noise.Noise2D(j.t+offset, 101.5)),
	}
}

// NewJitter builds the source named by the configuration.
func NewJitter(mode config.JitterMode, rng *rand.Rand) Jitter {
	if mode == config.JitterPerlin {
		return NewPerlinJitter(rng.Int64())
	}
	return NewUniformJitter(rng)
}

func unitHalf(n float64) float64 {
	return math.Max(-1, math.Min(1, n)) * 0.5
}
