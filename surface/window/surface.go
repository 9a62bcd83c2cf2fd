// Package window shows a starfield in a desktop window using Ebiten.
package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/starfield/render"
)

// spriteRadius is the radius of the disc scaled into ellipses.
const spriteRadius = 32

// Surface draws into an offscreen image that the host copies to the
// screen. Ellipses are drawn by scaling and rotating a white disc sprite.
type Surface struct {
	canvas *ebiten.Image
	disc   *ebiten.Image
}

func NewSurface(width, height int) *Surface {
	disc := ebiten.NewImage(2*spriteRadius, 2*spriteRadius)
	vector.DrawFilledCircle(disc, spriteRadius, spriteRadius, spriteRadius, color.White, true)

	return &Surface{
		canvas: ebiten.NewImage(max(width, 1), max(height, 1)),
		disc:   disc,
	}
}

// Image returns the offscreen image.
func (s *Surface) Image() *ebiten.Image {
	return s.canvas
}

// Resize replaces the offscreen image when the extent changed.
func (s *Surface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	b := s.canvas.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	s.canvas.Deallocate()
	s.canvas = ebiten.NewImage(width, height)
}

func (s *Surface) Clear() {
	s.canvas.Clear()
}

func (s *Surface) FillBackground(c render.Color) {
	b := s.canvas.Bounds()
	vector.DrawFilledRect(s.canvas, 0, 0, float32(b.Dx()), float32(b.Dy()), c.NRGBA(), false)
}

func (s *Surface) FillCircle(x, y, r float64, c render.Color) {
	vector.DrawFilledCircle(s.canvas, float32(x), float32(y), float32(r), c.NRGBA(), true)
}

func (s *Surface) FillEllipse(x, y, rx, ry, rotation float64, c render.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-spriteRadius, -spriteRadius)
	op.GeoM.Scale(rx/spriteRadius, ry/spriteRadius)
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.NRGBA())
	op.Filter = ebiten.FilterLinear
	s.canvas.DrawImage(s.disc, op)
}
