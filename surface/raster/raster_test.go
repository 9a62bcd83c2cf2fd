package raster

import (
	"bytes"
	"image/png"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/starfield"
	"github.com/plus3/starfield/config"
	"github.com/plus3/starfield/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSurfaceRejectsEmpty(t *testing.T) {
	_, err := NewSurface(0, 10)
	assert.Error(t, err)
}

func TestFillBackground(t *testing.T) {
	s, err := NewSurface(8, 8)
	require.NoError(t, err)

	s.FillBackground(render.Color{R: 255, G: 0, B: 0, A: 1})
	r, g, b, a := s.Image().At(4, 4).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0xffff), a)

	s.Clear()
	_, _, _, a = s.Image().At(4, 4).RGBA()
	assert.Zero(t, a)
}

func TestFillCircleCoversCentre(t *testing.T) {
	s, err := NewSurface(32, 32)
	require.NoError(t, err)

	s.FillCircle(16, 16, 6, render.Color{R: 255, G: 255, B: 255, A: 1})
	_, _, _, centre := s.Image().At(16, 16).RGBA()
	_, _, _, corner := s.Image().At(1, 1).RGBA()
	assert.Greater(t, centre, uint32(0))
	assert.Zero(t, corner)
}

func TestSnapshot(t *testing.T) {
	s, err := NewSurface(64, 48)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.NumDots = 40
	e, err := starfield.New(cfg, s, s, starfield.WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)
	defer e.Destroy()

	_, err = e.Frame(16 * time.Millisecond)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	path := filepath.Join(t.TempDir(), "out", "frame.png")
	require.NoError(t, s.SavePNG(path))
	assert.FileExists(t, path)
}

func TestFilerNumbersFrames(t *testing.T) {
	s, err := NewSurface(4, 4)
	require.NoError(t, err)

	prefix := filepath.Join(t.TempDir(), "frame-")
	f := NewFiler(s, prefix, 3)

	first, err := f.Save()
	require.NoError(t, err)
	second, err := f.Save()
	require.NoError(t, err)

	assert.Equal(t, prefix+"000.png", first)
	assert.Equal(t, prefix+"001.png", second)
	assert.FileExists(t, second)
}
