package config

import "fmt"

// Patch is a partial update. Nil fields keep their current value.
type Patch struct {
	NumDots         *int    `json:"numDots,omitempty"`
	DotColor        *string `json:"dotColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`

	DotMinSize    *float64 `json:"dotMinSize,omitempty"`
	DotMaxSize    *float64 `json:"dotMaxSize,omitempty"`
	DotMinOpacity *float64 `json:"dotMinOpacity,omitempty"`
	DotMaxOpacity *float64 `json:"dotMaxOpacity,omitempty"`

	InfluenceRadius   *float64 `json:"influenceRadius,omitempty"`
	InfluenceStrength *float64 `json:"influenceStrength,omitempty"`
	RandomFactor      *float64 `json:"randomFactor,omitempty"`
	Friction          *float64 `json:"friction,omitempty"`
	MaxSpeed          *float64 `json:"maxSpeed,omitempty"`

	Reactive   *bool `json:"reactive,omitempty"`
	Responsive *bool `json:"responsive,omitempty"`
	ZIndex     *int  `json:"zIndex,omitempty"`

	MouseSpeedDecay *float64 `json:"mouseSpeedDecay,omitempty"`
	MaxMouseSpeed   *float64 `json:"maxMouseSpeed,omitempty"`

	DotStretch     *bool    `json:"dotStretch,omitempty"`
	DotStretchMult *float64 `json:"dotStretchMult,omitempty"`
	// DotStretchMultiplier is the long spelling of DotStretchMult. When both
	// are set they must agree.
	DotStretchMultiplier *float64 `json:"dotStretchMultiplier,omitempty"`
	DotMaxStretch        *float64 `json:"dotMaxStretch,omitempty"`

	RotSmoothing          *bool    `json:"rotSmoothing,omitempty"`
	RotSmoothingIntensity *float64 `json:"rotSmoothingIntensity,omitempty"`

	Jitter *JitterMode `json:"jitter,omitempty"`
	Seed   *uint64     `json:"seed,omitempty"`
}

// Apply returns c with p applied. recreate reports whether the change
// alters the shape of the point set (point count, stretch or rotation
// smoothing toggles) so the field has to be rebuilt. On a validation error
// the original configuration is returned unchanged.
func (c Config) Apply(p Patch) (next Config, recreate bool, err error) {
	next = c

	set(&next.NumDots, p.NumDots)
	set(&next.DotColor, p.DotColor)
	set(&next.BackgroundColor, p.BackgroundColor)
	set(&next.DotMinSize, p.DotMinSize)
	set(&next.DotMaxSize, p.DotMaxSize)
	set(&next.DotMinOpacity, p.DotMinOpacity)
	set(&next.DotMaxOpacity, p.DotMaxOpacity)
	set(&next.InfluenceRadius, p.InfluenceRadius)
	set(&next.InfluenceStrength, p.InfluenceStrength)
	set(&next.RandomFactor, p.RandomFactor)
	set(&next.Friction, p.Friction)
	set(&next.MaxSpeed, p.MaxSpeed)
	set(&next.Reactive, p.Reactive)
	set(&next.Responsive, p.Responsive)
	set(&next.ZIndex, p.ZIndex)
	set(&next.MouseSpeedDecay, p.MouseSpeedDecay)
	set(&next.MaxMouseSpeed, p.MaxMouseSpeed)
	set(&next.DotStretch, p.DotStretch)
	set(&next.DotMaxStretch, p.DotMaxStretch)
	set(&next.RotSmoothing, p.RotSmoothing)
	set(&next.RotSmoothingIntensity, p.RotSmoothingIntensity)
	set(&next.Jitter, p.Jitter)
	set(&next.Seed, p.Seed)

	if p.DotStretchMult != nil && p.DotStretchMultiplier != nil && *p.DotStretchMult != *p.DotStretchMultiplier {
		return c, false, invalid("dotStretchMult", "conflicts with dotStretchMultiplier (%v != %v)", *p.DotStretchMult, *p.DotStretchMultiplier)
	}
	set(&next.DotStretchMult, p.DotStretchMult)
	set(&next.DotStretchMult, p.DotStretchMultiplier)

	if err := next.Validate(); err != nil {
		return c, false, fmt.Errorf("apply patch: %w", err)
	}

	recreate = next.NumDots != c.NumDots ||
		next.DotStretch != c.DotStretch ||
		next.RotSmoothing != c.RotSmoothing
	return next, recreate, nil
}

// Diff returns the patch that turns from into to.
func Diff(from, to Config) Patch {
	return Patch{
		NumDots:               changed(from.NumDots, to.NumDots),
		DotColor:              changed(from.DotColor, to.DotColor),
		BackgroundColor:       changed(from.BackgroundColor, to.BackgroundColor),
		DotMinSize:            changed(from.DotMinSize, to.DotMinSize),
		DotMaxSize:            changed(from.DotMaxSize, to.DotMaxSize),
		DotMinOpacity:         changed(from.DotMinOpacity, to.DotMinOpacity),
		DotMaxOpacity:         changed(from.DotMaxOpacity, to.DotMaxOpacity),
		InfluenceRadius:       changed(from.InfluenceRadius, to.InfluenceRadius),
		InfluenceStrength:     changed(from.InfluenceStrength, to.InfluenceStrength),
		RandomFactor:          changed(from.RandomFactor, to.RandomFactor),
		Friction:              changed(from.Friction, to.Friction),
		MaxSpeed:              changed(from.MaxSpeed, to.MaxSpeed),
		Reactive:              changed(from.Reactive, to.Reactive),
		Responsive:            changed(from.Responsive, to.Responsive),
		ZIndex:                changed(from.ZIndex, to.ZIndex),
		MouseSpeedDecay:       changed(from.MouseSpeedDecay, to.MouseSpeedDecay),
		MaxMouseSpeed:         changed(from.MaxMouseSpeed, to.MaxMouseSpeed),
		DotStretch:            changed(from.DotStretch, to.DotStretch),
		DotStretchMult:        changed(from.DotStretchMult, to.DotStretchMult),
		DotMaxStretch:         changed(from.DotMaxStretch, to.DotMaxStretch),
		RotSmoothing:          changed(from.RotSmoothing, to.RotSmoothing),
		RotSmoothingIntensity: changed(from.RotSmoothingIntensity, to.RotSmoothingIntensity),
		Jitter:                changed(from.Jitter, to.Jitter),
		Seed:                  changed(from.Seed, to.Seed),
	}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func changed[T comparable](from, to T) *T {
	if from == to {
		return nil
	}
	return &to
}
