package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColor is returned for colour strings that cannot be parsed.
var ErrUnknownColor = errors.New("unknown color")

// Fallback is used whenever a configured colour cannot be parsed.
var Fallback = Color{R: 255, G: 255, B: 255, A: 1}

// Color is a straight (non premultiplied) sRGB colour with a fractional
// alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// WithAlpha returns the colour with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clampUnit(a)
	return c
}

// String formats the colour as a CSS rgba() value.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// NRGBA converts to the image/color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clampUnit(c.A) * 255))}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Transparent reports whether the colour has no visible contribution.
func (c Color) Transparent() bool {
	return c.A <= 0
}

// ParseColor understands CSS named colours, #rgb, #rrggbb, #rrggbbaa,
// rgb(...) and rgba(...).
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case s == "":
		return Color{}, fmt.Errorf("%w: empty string", ErrUnknownColor)
	case s == "transparent":
		return Color{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunctional(s)
	}

	if named, ok := tcell.ColorNames[s]; ok {
		r, g, b := named.RGB()
		return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 1}, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// ResolveColor parses s and replaces its alpha with alpha, falling back to
// an opaque default when s is not a colour.
func ResolveColor(s string, alpha float64) Color {
	c, err := ParseColor(s)
	if err != nil {
		c = Fallback
	}
	return c.WithAlpha(alpha)
}

func parseHex(s string) (Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %w", ErrUnknownColor, s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunctional(s string) (Color, error) {
	var body string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	parts := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseChannel(parts[i])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		rgb[i] = v
	}

	alpha := 1.0
	if len(parts) == 4 {
		a, err := parseAlpha(parts[3])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		alpha = a
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}

func parseChannel(s string) (uint8, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := parseFinite(pct)
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(clampUnit(v/100) * 255)), nil
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, err
	}
	return uint8(math.Round(math.Max(0, math.Min(255, v)))), nil
}

func parseAlpha(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := parseFinite(pct)
		if err != nil {
			return 0, err
		}
		return clampUnit(v / 100), nil
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, err
	}
	return clampUnit(v), nil
}

// parseFinite rejects the NaN and infinity spellings ParseFloat accepts.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
