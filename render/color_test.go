package render_test

import (
	"image/color"
	"testing"

	"github.com/plus3/starfield/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want render.Color
	}{
		{"white", render.Color{R: 255, G: 255, B: 255, A: 1}},
		{"Red", render.Color{R: 255, A: 1}},
		{"#0f0", render.Color{G: 255, A: 1}},
		{"#336699", render.Color{R: 0x33, G: 0x66, B: 0x99, A: 1}},
		{"#33669980", render.Color{R: 0x33, G: 0x66, B: 0x99, A: 128.0 / 255}},
		{"rgb(1, 2, 3)", render.Color{R: 1, G: 2, B: 3, A: 1}},
		{"rgba(1,2,3,0.5)", render.Color{R: 1, G: 2, B: 3, A: 0.5}},
		{"rgb(100% 0% 50% / 25%)", render.Color{R: 255, G: 0, B: 128, A: 0.25}},
		{"rgba(300, -4, 3, 7)", render.Color{R: 255, G: 0, B: 3, A: 1}},
		{"transparent", render.Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := render.ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want.R, got.R)
			assert.Equal(t, tt.want.G, got.G)
			assert.Equal(t, tt.want.B, got.B)
			assert.InDelta(t, tt.want.A, got.A, 1e-9)
		})
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "rgb(1,2)", "rgba(a,b,c,d)", "hsl(0, 0%, 0%)", "definitely-not",
		"rgb(nan, 0, 0)", "rgb(0, inf, 0)", "rgb(0, 0, -Inf%)", "rgba(0, 0, 0, NaN)", "rgba(0, 0, 0, +inf%)"} {
		_, err := render.ParseColor(in)
		assert.ErrorIs(t, err, render.ErrUnknownColor, in)
	}
}

func TestResolveColorOverridesAlpha(t *testing.T) {
	c := render.ResolveColor("rgba(10, 20, 30, 0.9)", 0.3)
	assert.Equal(t, "rgba(10, 20, 30, 0.3)", c.String())

	c = render.ResolveColor("bogus", 0.5)
	assert.Equal(t, render.Fallback.WithAlpha(0.5), c)

	assert.Equal(t, 1.0, render.ResolveColor("black", 4).A)
}

func TestColorNRGBA(t *testing.T) {
	c := render.Color{R: 1, G: 2, B: 3, A: 0.5}
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 128}, c.NRGBA())

	var _ color.Color = c
}
