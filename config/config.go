// Package config defines the tunable parameters of a starfield together with
// their defaults, validation rules and partial updates.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// JitterMode selects the source of per-step random velocity perturbation.
type JitterMode string

const (
	JitterUniform JitterMode = "uniform"
	JitterPerlin  JitterMode = "perlin"
)

// Config holds every option of a starfield. The zero value is not usable,
// start from Default.
type Config struct {
	NumDots         int    `json:"numDots"`
	DotColor        string `json:"dotColor"`
	BackgroundColor string `json:"backgroundColor"`

	DotMinSize    float64 `json:"dotMinSize"`
	DotMaxSize    float64 `json:"dotMaxSize"`
	DotMinOpacity float64 `json:"dotMinOpacity"`
	DotMaxOpacity float64 `json:"dotMaxOpacity"`

	InfluenceRadius   float64 `json:"influenceRadius"`
	InfluenceStrength float64 `json:"influenceStrength"`
	RandomFactor      float64 `json:"randomFactor"`
	Friction          float64 `json:"friction"`
	MaxSpeed          float64 `json:"maxSpeed"`

	// Reactive enables cursor coupling, Responsive lets the host follow
	// surface resizes.
	Reactive   bool `json:"reactive"`
	Responsive bool `json:"responsive"`
	ZIndex     int  `json:"zIndex"`

	MouseSpeedDecay float64 `json:"mouseSpeedDecay"`
	MaxMouseSpeed   float64 `json:"maxMouseSpeed"`

	DotStretch     bool    `json:"dotStretch"`
	DotStretchMult float64 `json:"dotStretchMult"`
	DotMaxStretch  float64 `json:"dotMaxStretch"`

	RotSmoothing bool `json:"rotSmoothing"`
	// RotSmoothingIntensity is the time in milliseconds a point takes to
	// turn towards its heading. Zero turns instantly.
	RotSmoothingIntensity float64 `json:"rotSmoothingIntensity"`

	Jitter JitterMode `json:"jitter"`
	// Seed fixes the random source. Zero seeds from the clock.
	Seed uint64 `json:"seed"`
}

// Default returns the configuration used when no option is overridden.
func Default() Config {
	return Config{
		NumDots:               200,
		DotColor:              "#ffffff",
		BackgroundColor:       "#000000",
		DotMinSize:            1,
		DotMaxSize:            3,
		DotMinOpacity:         0.2,
		DotMaxOpacity:         1,
		InfluenceRadius:       150,
		InfluenceStrength:     0.2,
		RandomFactor:          0.1,
		Friction:              0.98,
		MaxSpeed:              2.5,
		Reactive:              true,
		Responsive:            true,
		ZIndex:                -1,
		MouseSpeedDecay:       0.9,
		MaxMouseSpeed:         20,
		DotStretch:            false,
		DotStretchMult:        2,
		DotMaxStretch:         6,
		RotSmoothing:          false,
		RotSmoothingIntensity: 150,
		Jitter:                JitterUniform,
	}
}

// CursorEnabled reports whether cursor influence applies. A non-positive
// influence radius disables the feature instead of dividing by zero.
func (c Config) CursorEnabled() bool {
	return c.Reactive && c.InfluenceRadius > 0 && !math.IsInf(c.InfluenceRadius, 0)
}

// Validate checks every option and returns all violations joined together.
func (c Config) Validate() error {
	var errs []error

	if c.NumDots < 0 {
		errs = append(errs, invalid("numDots", "must not be negative, got %d", c.NumDots))
	}

	errs = append(errs, checkRange("dotMinSize", "dotMaxSize", c.DotMinSize, c.DotMaxSize, math.Inf(1))...)
	errs = append(errs, checkRange("dotMinOpacity", "dotMaxOpacity", c.DotMinOpacity, c.DotMaxOpacity, 1)...)

	if !finite(c.InfluenceRadius) {
		errs = append(errs, invalid("influenceRadius", "must be finite"))
	}
	errs = append(errs, nonNegative("influenceStrength", c.InfluenceStrength))
	errs = append(errs, nonNegative("randomFactor", c.RandomFactor))

	if !finite(c.Friction) || c.Friction <= 0 || c.Friction > 1 {
		errs = append(errs, invalid("friction", "must be in (0, 1], got %v", c.Friction))
	}
	if !finite(c.MaxSpeed) || c.MaxSpeed <= 0 {
		errs = append(errs, invalid("maxSpeed", "must be positive, got %v", c.MaxSpeed))
	}

	if !finite(c.MouseSpeedDecay) || c.MouseSpeedDecay < 0 || c.MouseSpeedDecay > 1 {
		errs = append(errs, invalid("mouseSpeedDecay", "must be in [0, 1], got %v", c.MouseSpeedDecay))
	}
	errs = append(errs, nonNegative("maxMouseSpeed", c.MaxMouseSpeed))
	errs = append(errs, nonNegative("dotStretchMult", c.DotStretchMult))
	errs = append(errs, nonNegative("dotMaxStretch", c.DotMaxStretch))
	errs = append(errs, nonNegative("rotSmoothingIntensity", c.RotSmoothingIntensity))

	switch c.Jitter {
	case JitterUniform, JitterPerlin:
	default:
		errs = append(errs, invalid("jitter", "unknown mode %q", c.Jitter))
	}

	return errors.Join(errs...)
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}

func nonNegative(field string, v float64) error {
	if !finite(v) || v < 0 {
		return invalid(field, "must be a non-negative number, got %v", v)
	}
	return nil
}

func checkRange(minField, maxField string, lo, hi, limit float64) []error {
	var errs []error
	if err := nonNegative(minField, lo); err != nil {
		errs = append(errs, err)
	}
	if err := nonNegative(maxField, hi); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs
	}
	if lo > hi {
		errs = append(errs, invalid(minField, "must not exceed %s (%v > %v)", maxField, lo, hi))
	}
	if hi > limit {
		errs = append(errs, invalid(maxField, "must not exceed %v, got %v", limit, hi))
	}
	return errs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
