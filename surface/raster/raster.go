// Package raster renders a starfield into an in-memory RGBA image with the
// pure Go software backend of tfriedel6/canvas. It backs headless
// snapshots and needs no display.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/plus3/starfield/render"
	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// Surface implements render.Surface on a software canvas.
type Surface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	width   int
	height  int
}

func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	backend := softwarebackend.New(width, height)
	return &Surface{
		backend: backend,
		cv:      canvas.New(backend),
		width:   width,
		height:  height,
	}, nil
}

// Size implements starfield.Container.
func (s *Surface) Size() (float64, float64, bool) {
	return float64(s.width), float64(s.height), true
}

// Image returns the pixels drawn so far.
func (s *Surface) Image() *image.RGBA {
	return s.backend.Image
}

func (s *Surface) Clear() {
	s.cv.ClearRect(0, 0, float64(s.width), float64(s.height))
}

func (s *Surface) FillBackground(c render.Color) {
	s.cv.SetFillStyle(c.NRGBA())
	s.cv.FillRect(0, 0, float64(s.width), float64(s.height))
}

func (s *Surface) FillCircle(x, y, r float64, c render.Color) {
	s.cv.SetFillStyle(c.NRGBA())
	s.cv.BeginPath()
	s.cv.Arc(x, y, r, 0, 2*math.Pi, false)
	s.cv.Fill()
}

func (s *Surface) FillEllipse(x, y, rx, ry, rotation float64, c render.Color) {
	s.cv.SetFillStyle(c.NRGBA())
	s.cv.BeginPath()
	s.cv.Ellipse(x, y, rx, ry, rotation, 0, 2*math.Pi, false)
	s.cv.Fill()
}

// WritePNG encodes the current image.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.backend.Image); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the current image to path, creating parent directories.
func (s *Surface) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("raster: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Filer saves numbered frames: prefix000.png, prefix001.png and so on for
// three digits.
type Filer struct {
	surface *Surface
	prefix  string
	digits  int
	index   int
}

func NewFiler(surface *Surface, prefix string, digits int) *Filer {
	return &Filer{
		surface: surface,
		prefix:  prefix,
		digits:  digits,
	}
}

// Save writes the current image under the next file name and returns it.
func (f *Filer) Save() (string, error) {
	filename := fmt.Sprintf("%s%0*d.png", f.prefix, f.digits, f.index)
	if err := f.surface.SavePNG(filename); err != nil {
		return "", err
	}
	f.index++
	return filename, nil
}
