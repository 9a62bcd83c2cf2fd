// Package term shows a starfield in a terminal. Every cell holds two
// vertically stacked pixels drawn with an upper half block, and each pixel
// spans Scale surface units so the same configuration looks alike in a
// window and in a terminal.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/starfield/render"
)

// DefaultScale is the number of surface units per terminal pixel.
const DefaultScale = 6

const upperHalf = '▀'

// Surface rasterizes into a pixel buffer that Flush copies to a screen.
type Surface struct {
	cols, rows int
	scale      float64
	pixels     []colorful.Color
}

func NewSurface(cols, rows int, scale float64) *Surface {
	if scale <= 0 {
		scale = DefaultScale
	}
	s := &Surface{scale: scale}
	s.Resize(cols, rows)
	return s
}

// Resize changes the cell grid and clears the buffer.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.pixels = make([]colorful.Color, s.cols*s.rows*2)
}

// Size implements starfield.Container.
func (s *Surface) Size() (float64, float64, bool) {
	if s.cols == 0 || s.rows == 0 {
		return 0, 0, false
	}
	return float64(s.cols) * s.scale, float64(s.rows*2) * s.scale, true
}

// ToSurface maps the centre of a terminal cell to surface coordinates.
func (s *Surface) ToSurface(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.scale, (float64(row)*2 + 1) * s.scale
}

// Pixel returns the colour of the pixel at x, y in pixel units.
func (s *Surface) Pixel(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows*2 {
		return colorful.Color{}
	}
	return s.pixels[y*s.cols+x]
}

func (s *Surface) Clear() {
	clear(s.pixels)
}

func (s *Surface) FillBackground(c render.Color) {
	src := toColorful(c)
	for i := range s.pixels {
		s.pixels[i] = s.pixels[i].BlendRgb(src, c.A)
	}
}

func (s *Surface) FillCircle(x, y, r float64, c render.Color) {
	s.FillEllipse(x, y, r, r, 0, c)
}

// FillEllipse blends every pixel whose centre lies inside the ellipse. An
// ellipse smaller than a pixel still marks the pixel under its centre.
func (s *Surface) FillEllipse(x, y, rx, ry, rotation float64, c render.Color) {
	if s.cols == 0 || s.rows == 0 || rx <= 0 || ry <= 0 {
		return
	}
	cx, cy := x/s.scale, y/s.scale
	ax, ay := rx/s.scale, ry/s.scale
	sin, cos := math.Sincos(rotation)
	src := toColorful(c)

	reach := math.Max(ax, ay)
	x0, x1 := int(math.Floor(cx-reach)), int(math.Ceil(cx+reach))
	y0, y1 := int(math.Floor(cy-reach)), int(math.Ceil(cy+reach))

	hit := false
	for py := max(y0, 0); py <= min(y1, s.rows*2-1); py++ {
		for px := max(x0, 0); px <= min(x1, s.cols-1); px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			u := (dx*cos + dy*sin) / ax
			v := (-dx*sin + dy*cos) / ay
			if u*u+v*v > 1 {
				continue
			}
			s.blend(px, py, src, c.A)
			hit = true
		}
	}
	if !hit {
		s.blend(int(math.Floor(cx)), int(math.Floor(cy)), src, c.A)
	}
}

func (s *Surface) blend(px, py int, src colorful.Color, alpha float64) {
	if px < 0 || py < 0 || px >= s.cols || py >= s.rows*2 {
		return
	}
	i := py*s.cols + px
	s.pixels[i] = s.pixels[i].BlendRgb(src, alpha)
}

// Flush writes the buffer to screen and shows it.
func (s *Surface) Flush(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top := s.pixels[row*2*s.cols+col]
			bottom := s.pixels[(row*2+1)*s.cols+col]
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
	screen.Show()
}

func toColorful(c render.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
